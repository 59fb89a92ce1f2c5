package bot

import (
	"context"
	"log"

	"github.com/nikhilpatel/stockmitra/internal/analysis"
	"github.com/nikhilpatel/stockmitra/internal/market"
	"github.com/nikhilpatel/stockmitra/internal/prefs"
	"github.com/nikhilpatel/stockmitra/internal/textsplit"
	"github.com/nikhilpatel/stockmitra/internal/whatsapp"
)

// Markets abstracts the data layer so tests can stub it.
type Markets interface {
	Snapshots(ctx context.Context, symbols []string) []market.Snapshot
}

// Service runs the whole pipeline for one inbound message:
// resolve → fetch → generate → segment → send.
type Service struct {
	resolver   *prefs.Resolver
	markets    Markets
	strategy   analysis.Strategy
	sender     whatsapp.Sender
	maxChunk   int
	maxSymbols int
}

func NewService(resolver *prefs.Resolver, markets Markets, strategy analysis.Strategy, sender whatsapp.Sender, maxChunk, maxSymbols int) *Service {
	return &Service{
		resolver:   resolver,
		markets:    markets,
		strategy:   strategy,
		sender:     sender,
		maxChunk:   maxChunk,
		maxSymbols: maxSymbols,
	}
}

var helpTexts = map[prefs.Language]string{
	prefs.LanguageEnglish:  `I could not find a stock name in your message. Try something like "TCS" or "Reliance Infosys".`,
	prefs.LanguageHindi:    `आपके संदेश में कोई स्टॉक नाम नहीं मिला। "TCS" या "Reliance Infosys" जैसा कुछ भेजकर देखें।`,
	prefs.LanguageGujarati: `તમારા સંદેશમાં કોઈ સ્ટોકનું નામ મળ્યું નથી. "TCS" અથવા "Reliance Infosys" જેવું કંઈક મોકલી જુઓ.`,
}

var apologyTexts = map[prefs.Language]string{
	prefs.LanguageEnglish:  "Sorry, I could not prepare the analysis right now. Please try again in a few minutes.",
	prefs.LanguageHindi:    "क्षमा करें, अभी विश्लेषण तैयार नहीं हो सका। कृपया कुछ मिनट बाद फिर से कोशिश करें।",
	prefs.LanguageGujarati: "માફ કરશો, અત્યારે વિશ્લેષણ તૈયાર થઈ શક્યું નથી. કૃપા કરીને થોડી મિનિટો પછી ફરી પ્રયાસ કરો.",
}

func (s *Service) HandleIncoming(ctx context.Context, from, body string) error {
	log.Printf("[bot] from=%s text=%q", from, body)

	switch d := s.resolver.Resolve(ctx, from, body).(type) {
	case prefs.LanguageSet:
		return s.sender.Send(ctx, from, d.Confirmation)
	case prefs.NeedsOnboarding:
		return s.sender.Send(ctx, from, d.Prompt)
	case prefs.Ready:
		return s.answer(ctx, from, d)
	}
	return nil
}

func (s *Service) answer(ctx context.Context, from string, d prefs.Ready) error {
	symbols := market.ParseQuery(d.Query, s.maxSymbols)
	if len(symbols) == 0 {
		return s.sender.Send(ctx, from, text(helpTexts, d.Language))
	}

	snapshots := s.markets.Snapshots(ctx, symbols)

	reply, err := s.strategy.Generate(ctx, snapshots, d.Language)
	if err != nil {
		log.Printf("[bot] generate for %s: %v", from, err)
		return s.sender.Send(ctx, from, text(apologyTexts, d.Language))
	}

	chunks, err := textsplit.Split(reply, s.maxChunk)
	if err != nil {
		return err
	}
	return s.sender.SendChunked(ctx, from, chunks)
}

func text(m map[prefs.Language]string, lang prefs.Language) string {
	if t, ok := m[lang]; ok {
		return t
	}
	return m[prefs.LanguageEnglish]
}
