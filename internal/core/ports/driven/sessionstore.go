package driven

import (
	"context"
	"time"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
)

// SessionStore persists conversation transcripts across process restarts.
// This is an optional service; when nil, history lives in memory only.
type SessionStore interface {
	// SaveTurn appends one turn to the stored transcript of a session,
	// creating the session record on first write.
	SaveTurn(ctx context.Context, sessionID string, turn domain.ConversationTurn) error

	// History returns the stored transcript of a session in order.
	History(ctx context.Context, sessionID string) ([]domain.ConversationTurn, error)

	// ListSessions returns summaries of all stored sessions, most recent
	// first.
	ListSessions(ctx context.Context) ([]SessionInfo, error)

	// DeleteSession removes a session and its transcript.
	DeleteSession(ctx context.Context, sessionID string) error

	// Close releases resources.
	Close() error
}

// SessionInfo summarises one stored session.
type SessionInfo struct {
	// ID is the session identifier.
	ID string

	// Turns is the number of stored turns.
	Turns int

	// StartedAt is when the first turn was written.
	StartedAt time.Time
}
