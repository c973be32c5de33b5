package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driven"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driving"
	"github.com/fluffyai/helpdesk-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// systemPrompt is the persona given to the completion model on every turn.
const systemPrompt = `You are a helpful customer service agent for FluffyAI, a company that sells AI-powered plush toys.

Your personality:
- Professional yet friendly and approachable
- Concise - get to the point without being cold
- Slightly humorous when appropriate (gentle jokes, wordplay, but never at the customer's expense)
- Empathetic and understanding
- Patient with unclear questions

Your responsibilities:
- Answer questions about products, company policies, shipping, returns, etc.
- If a customer's question is unclear or ambiguous, politely ask for clarification
- If you don't know something or the information isn't in your knowledge base, be honest and offer to connect them with a human representative
- Stay on topic - focus on FluffyAI products and services
- Be helpful but don't make promises you can't keep

Guidelines:
- Keep responses under 150 words unless more detail is specifically requested
- Use the provided context to answer questions accurately
- If the context doesn't contain the answer, say so
- Never make up product features, prices, or policies
- When listing options, be clear and organized
- Add a touch of personality (e.g., "Great question!" or "I'd be happy to help with that!") but stay professional

Remember: You're here to help customers have a great experience with FluffyAI!`

// noContextMarker is injected when retrieval yields nothing, so the model
// knows the knowledge base had no answer rather than guessing.
const noContextMarker = "No relevant information found in knowledge base."

// historyWindow caps how many recent turns are sent to the model.
// Older turns stay in stored history for transcripts but drop out of
// the prompt.
const historyWindow = 10

// ChatConfig configures the chat orchestrator.
type ChatConfig struct {
	// Temperature controls sampling randomness. Nil defaults to 0.7;
	// an explicit zero means deterministic sampling.
	Temperature *float64

	// MaxTokens caps response length. Defaults to 1024.
	MaxTokens int

	// TopK is how many chunks to ground each turn with. Defaults to 3.
	TopK int
}

// ChatService orchestrates one grounded conversation session.
// It is not safe for concurrent use; one session processes one turn at
// a time.
type ChatService struct {
	llmService   driven.LLMService
	retriever    driving.Retriever
	sessionStore driven.SessionStore // optional, may be nil
	session      *domain.Session
	config       ChatConfig
}

// NewChatService creates a new chat orchestrator for the given session.
// The sessionStore is optional; when nil, history lives in memory only.
func NewChatService(
	llmService driven.LLMService,
	retriever driving.Retriever,
	sessionStore driven.SessionStore,
	session *domain.Session,
	config ChatConfig,
) *ChatService {
	if config.Temperature == nil {
		defaultTemp := 0.7
		config.Temperature = &defaultTemp
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = 1024
	}
	if config.TopK <= 0 {
		config.TopK = DefaultTopK
	}
	return &ChatService{
		llmService:   llmService,
		retriever:    retriever,
		sessionStore: sessionStore,
		session:      session,
		config:       config,
	}
}

// Respond processes one user message and returns the assistant reply.
//
// The user turn is appended to history before the completion call. When
// the call fails it stays appended; a retrying caller resends with it
// still present. Rolling it back would silently lose what the user said.
func (s *ChatService) Respond(ctx context.Context, userMessage string, useRAG bool) (string, error) {
	logger.Section("Chat Turn")
	logger.Debug("User message: %q, RAG: %t", userMessage, useRAG)

	s.session.Append(domain.RoleUser, userMessage)
	s.persistTurn(ctx, domain.ConversationTurn{Role: domain.RoleUser, Content: userMessage})

	messages := []domain.ConversationTurn{
		{Role: domain.RoleSystem, Content: systemPrompt},
	}

	if useRAG {
		contextBlock, err := s.retrieveContext(ctx, userMessage)
		if err != nil {
			return "", err
		}
		messages = append(messages, domain.ConversationTurn{
			Role:    domain.RoleSystem,
			Content: contextBlock,
		})
	}

	messages = append(messages, s.session.Window(historyWindow)...)
	logger.Debug("Prompt has %d messages", len(messages))

	reply, err := s.llmService.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("generating response: %w", err)
	}

	s.session.Append(domain.RoleAssistant, reply)
	s.persistTurn(ctx, domain.ConversationTurn{Role: domain.RoleAssistant, Content: reply})

	return reply, nil
}

// History returns the full stored turn history of the session.
func (s *ChatService) History() []domain.ConversationTurn {
	return s.session.Turns()
}

// Reset discards all history. Idempotent.
func (s *ChatService) Reset() {
	logger.Debug("Resetting session %s", s.session.ID)
	s.session.Reset()
}

// retrieveContext fetches the nearest chunks for the query and formats
// them as a system context block.
func (s *ChatService) retrieveContext(ctx context.Context, query string) (string, error) {
	results, err := s.retriever.Retrieve(ctx, query, s.config.TopK)
	if err != nil {
		return "", fmt.Errorf("retrieving context: %w", err)
	}

	return buildContextBlock(results), nil
}

// buildContextBlock formats retrieved chunks as labeled, delimited source
// excerpts for the prompt.
func buildContextBlock(results []domain.SearchResult) string {
	context := noContextMarker
	if len(results) > 0 {
		parts := make([]string, 0, len(results))
		for i, r := range results {
			parts = append(parts, fmt.Sprintf("[Source %d: %s]\n%s", i+1, r.Source, r.Content))
		}
		context = strings.Join(parts, "\n\n---\n\n")
	}

	return fmt.Sprintf(`Here is relevant information from the knowledge base that may help answer the user's question:

%s

---

Now, please answer the user's question based on this context. If the context doesn't contain the answer, let the user know and offer to help in another way.`, context)
}

// RestoreSession builds a session seeded with the stored transcript, so a
// resumed conversation carries its prior turns into the prompt window.
// With no store, or no stored transcript, the session starts empty.
func RestoreSession(ctx context.Context, store driven.SessionStore, sessionID string) *domain.Session {
	session := domain.NewSession(sessionID)
	if store == nil {
		return session
	}
	turns, err := store.History(ctx, sessionID)
	if err != nil {
		logger.Warn("Could not restore session %s: %v", sessionID, err)
		return session
	}
	for _, turn := range turns {
		session.Append(turn.Role, turn.Content)
	}
	if len(turns) > 0 {
		logger.Debug("Restored %d turns for session %s", len(turns), sessionID)
	}
	return session
}

// persistTurn writes a turn to the transcript store when one is present.
// Persistence failures are logged, not raised; losing a transcript line
// should not fail the turn.
func (s *ChatService) persistTurn(ctx context.Context, turn domain.ConversationTurn) {
	if s.sessionStore == nil {
		return
	}
	if err := s.sessionStore.SaveTurn(ctx, s.session.ID, turn); err != nil {
		logger.Warn("Failed to persist turn: %v", err)
	}
}
