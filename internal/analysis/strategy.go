// Package analysis turns market snapshots into a reply in the user's
// language. Extraction details and prompt phrasing have been revised more
// than once, so generation is a versioned strategy behind one interface
// rather than fixed logic.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikhilpatel/stockmitra/internal/ai"
	"github.com/nikhilpatel/stockmitra/internal/market"
	"github.com/nikhilpatel/stockmitra/internal/prefs"
)

const (
	// StrategyNative answers in the target language in a single call.
	StrategyNative = "native"
	// StrategyTranslate writes the analysis in English, then translates.
	// Kept because translation quality for Gujarati numbers was better
	// with a dedicated pass on some models.
	StrategyTranslate = "translate"
)

// Strategy generates the reply text for a set of snapshots.
type Strategy interface {
	Name() string
	Generate(ctx context.Context, snapshots []market.Snapshot, lang prefs.Language) (string, error)
}

// NewStrategy selects a strategy by config name.
func NewStrategy(name string, model ai.AI) (Strategy, error) {
	switch name {
	case "", StrategyNative:
		return &nativeStrategy{ai: model}, nil
	case StrategyTranslate:
		return &translateStrategy{ai: model}, nil
	default:
		return nil, fmt.Errorf("analysis: unknown strategy %q", name)
	}
}

type nativeStrategy struct {
	ai ai.AI
}

func (s *nativeStrategy) Name() string { return StrategyNative }

func (s *nativeStrategy) Generate(ctx context.Context, snapshots []market.Snapshot, lang prefs.Language) (string, error) {
	system := analysisSystemPrompt + "\n\nRespond entirely in " + languageName(lang) + "."
	reply, err := s.ai.Complete(ctx, system, buildUserContent(snapshots))
	if err != nil {
		return "", fmt.Errorf("analysis generate: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

type translateStrategy struct {
	ai ai.AI
}

func (s *translateStrategy) Name() string { return StrategyTranslate }

func (s *translateStrategy) Generate(ctx context.Context, snapshots []market.Snapshot, lang prefs.Language) (string, error) {
	system := analysisSystemPrompt + "\n\nRespond entirely in English."
	english, err := s.ai.Complete(ctx, system, buildUserContent(snapshots))
	if err != nil {
		return "", fmt.Errorf("analysis generate: %w", err)
	}
	english = strings.TrimSpace(english)

	if lang == prefs.LanguageEnglish {
		return english, nil
	}

	name := languageName(lang)
	translated, err := s.ai.Complete(ctx, fmt.Sprintf(translateSystemPrompt, name, name), english)
	if err != nil {
		return "", fmt.Errorf("analysis translate: %w", err)
	}
	return strings.TrimSpace(translated), nil
}

func languageName(lang prefs.Language) string {
	if name, ok := languageNames[lang]; ok {
		return name
	}
	return "English"
}
