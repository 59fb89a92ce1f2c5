package prefs

import (
	"context"
	"database/sql"
	"fmt"
)

type pgStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) Store {
	return &pgStore{db: db}
}

// EnsureSchema creates the users table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			identifier    text PRIMARY KEY,
			language      text NOT NULL DEFAULT 'pending',
			message_count bigint NOT NULL DEFAULT 0,
			created_at    timestamptz NOT NULL DEFAULT now(),
			last_used_at  timestamptz NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure users schema: %w", err)
	}
	return nil
}

// Touch is a single-row atomic upsert, so concurrent webhooks for the same
// identifier never lose a message_count increment.
func (s *pgStore) Touch(ctx context.Context, identifier string) (UserPreference, error) {
	const q = `
		INSERT INTO users (identifier, language, message_count, created_at, last_used_at)
		VALUES ($1, 'pending', 1, now(), now())
		ON CONFLICT (identifier) DO UPDATE
		SET message_count = users.message_count + 1,
		    last_used_at  = now()
		RETURNING language, message_count, created_at, last_used_at
	`

	rec := UserPreference{Identifier: identifier}
	var lang string
	err := s.db.QueryRowContext(ctx, q, identifier).Scan(
		&lang,
		&rec.MessageCount,
		&rec.CreatedAt,
		&rec.LastUsedAt,
	)
	if err != nil {
		return UserPreference{}, err
	}
	rec.Language = Language(lang)
	return rec, nil
}

func (s *pgStore) SetLanguage(ctx context.Context, identifier string, lang Language) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET language = $2 WHERE identifier = $1
	`, identifier, string(lang))
	return err
}
