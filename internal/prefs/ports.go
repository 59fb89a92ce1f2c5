package prefs

import (
	"context"
	"time"
)

// Language is a user's reply language. Pending means the user has not chosen
// yet; a stored record never has an empty language.
type Language string

const (
	LanguagePending  Language = "pending"
	LanguageEnglish  Language = "english"
	LanguageHindi    Language = "hindi"
	LanguageGujarati Language = "gujarati"
)

// UserPreference is the per-user record the resolver maintains.
type UserPreference struct {
	Identifier   string
	Language     Language
	MessageCount int64
	CreatedAt    time.Time
	LastUsedAt   time.Time
}

// Store — persistence. Both operations must be atomic per identifier; the
// resolver adds no locking of its own, so concurrent webhooks for the same
// user rely on the store not losing message_count increments.
type Store interface {
	// Touch creates the record with Pending and message_count=1 on first
	// contact, otherwise increments the counter and refreshes last_used_at.
	// Returns the record as it stands after the write.
	Touch(ctx context.Context, identifier string) (UserPreference, error)

	SetLanguage(ctx context.Context, identifier string, lang Language) error
}
