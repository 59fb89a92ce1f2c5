package ai

import "context"

// AI — the language model behind the assistant. It knows nothing about
// WhatsApp, stocks, or the database.
type AI interface {
	Complete(ctx context.Context, systemPrompt, userContent string) (string, error)
}
