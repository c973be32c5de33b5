package driving

import (
	"context"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
)

// ChatService drives one grounded conversation session.
type ChatService interface {
	// Respond processes one user message and returns the assistant reply.
	// When useRAG is true the prompt is grounded with retrieved context.
	// On failure the error propagates and the user turn remains appended
	// to history; callers decide whether to resend or reset.
	Respond(ctx context.Context, userMessage string, useRAG bool) (string, error)

	// History returns the full stored turn history of the session.
	History() []domain.ConversationTurn

	// Reset discards all history. Idempotent.
	Reset()
}
