package domain

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one message in a session's ordered history.
type ConversationTurn struct {
	Role    Role
	Content string
}

// Session holds one conversation's append-only turn history.
// A Session is owned exclusively by the component driving the conversation
// for its lifetime; it is cleared wholesale by Reset, never partially edited.
// Sessions are not safe for concurrent use.
type Session struct {
	// ID identifies the session for transcript persistence.
	ID string

	turns []ConversationTurn
}

// NewSession creates an empty session with the given identifier.
func NewSession(id string) *Session {
	return &Session{ID: id}
}

// Append adds a turn to the end of the history.
func (s *Session) Append(role Role, content string) {
	s.turns = append(s.turns, ConversationTurn{Role: role, Content: content})
}

// Turns returns the full ordered history.
// The returned slice must not be modified by callers.
func (s *Session) Turns() []ConversationTurn {
	return s.turns
}

// Window returns the most recent n turns, or all turns if fewer exist.
func (s *Session) Window(n int) []ConversationTurn {
	if n <= 0 || len(s.turns) == 0 {
		return nil
	}
	if len(s.turns) <= n {
		return s.turns
	}
	return s.turns[len(s.turns)-n:]
}

// Len returns the number of turns in the history.
func (s *Session) Len() int {
	return len(s.turns)
}

// Reset discards all history. Resetting an empty session is a no-op.
func (s *Session) Reset() {
	s.turns = nil
}
