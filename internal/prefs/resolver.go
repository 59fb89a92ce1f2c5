package prefs

import (
	"context"
	"log"
	"strings"
)

// Resolver turns an inbound message into a Disposition and owns the side
// effect of persisting preference and activity changes.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve never returns an error: a broken store degrades to the onboarding
// prompt so the user always gets some reply.
func (r *Resolver) Resolve(ctx context.Context, identifier, rawMessage string) Disposition {
	trimmed := strings.TrimSpace(rawMessage)
	normalized := strings.ToLower(trimmed)

	// Activity accounting happens on every inbound message, before any
	// command or pending branching.
	rec, err := r.store.Touch(ctx, identifier)
	if err != nil {
		log.Printf("[prefs] touch %s: %v", identifier, err)
		return NeedsOnboarding{Prompt: OnboardingPrompt}
	}

	if lang, ok := languageTokens[normalized]; ok {
		// Explicit re-selection always wins over a stored preference.
		if err := r.store.SetLanguage(ctx, identifier, lang); err != nil {
			log.Printf("[prefs] set language %s: %v", identifier, err)
			return NeedsOnboarding{Prompt: OnboardingPrompt}
		}
		return LanguageSet{Language: lang, Confirmation: confirmations[lang]}
	}

	if rec.Language == LanguagePending || rec.Language == "" {
		return NeedsOnboarding{Prompt: OnboardingPrompt}
	}

	return Ready{Language: rec.Language, Query: trimmed}
}
