package core

// Role identifies the author of a conversation message. The set is closed:
// taleweaver conversations only ever contain user and assistant turns.
type Role string

const (
	// RoleUser marks a message authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks a message authored by the storyteller.
	RoleAssistant Role = "assistant"
)

// Message is a single immutable conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CopyMessages returns a defensive copy of the given history slice so callers
// can hand it out without exposing internal store state.
func CopyMessages(messages []Message) []Message {
	cp := make([]Message, len(messages))
	copy(cp, messages)
	return cp
}
