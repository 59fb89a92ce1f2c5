package prefs

// Disposition is the resolver's decision for one inbound message. It is a
// closed set: exactly the three variants below implement it, and each
// carries only the fields that make sense for that outcome.
type Disposition interface {
	disposition()
}

// LanguageSet — the message was a language command; the preference was
// persisted and Confirmation should be sent back in the chosen language.
type LanguageSet struct {
	Language     Language
	Confirmation string
}

// NeedsOnboarding — the user has no language on file (or the store is
// unreachable); Prompt should be sent and the message is not treated as a
// stock query.
type NeedsOnboarding struct {
	Prompt string
}

// Ready — normal processing: Query is the trimmed original-case message,
// to be parsed as a stock list and answered in Language.
type Ready struct {
	Language Language
	Query    string
}

func (LanguageSet) disposition()     {}
func (NeedsOnboarding) disposition() {}
func (Ready) disposition()          {}
