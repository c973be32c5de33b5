package driven

import (
	"context"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
)

// LLMService is the completion provider behind the chat orchestrator.
//
// Implementations may include:
//   - OpenAI-compatible APIs (OpenAI, Moonshot, Azure OpenAI)
//   - Ollama (local models)
//
// A failed call surfaces to the caller of the chat turn; there is no
// silent retry and no mid-flight cancellation once a request is issued.
type LLMService interface {
	// Chat sends an ordered sequence of role-tagged messages and returns
	// a single assistant message.
	Chat(ctx context.Context, messages []domain.ConversationTurn, opts ChatOptions) (string, error)

	// ModelName returns the name of the completion model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatOptions configures sampling for a completion request.
// Defaults matter for reproducibility: moderate temperature for natural
// phrasing, output capped to keep responses concise.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	// Nil leaves the provider's own default; zero is a valid setting.
	Temperature *float64
}
