package session

import (
	"sync"

	"github.com/hupe1980/taleweaver/core"
)

// InMemoryStore is a volatile Store implementation holding histories in a
// process local map. It is safe for concurrent access; returned slices are
// copies to prevent external mutation of internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	maxTurns int
	sessions map[string][]core.Message
}

// Options configure an InMemoryStore.
type Options struct {
	// MaxTurns caps the retained exchanges per session. The stored message
	// count never exceeds 2*MaxTurns.
	MaxTurns int
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{MaxTurns: DefaultMaxTurns}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryStore{maxTurns: opts.MaxTurns, sessions: make(map[string][]core.Message)}
}

// WithMaxTurns overrides the per-session turn cap.
func WithMaxTurns(n int) func(o *Options) {
	return func(o *Options) { o.MaxTurns = n }
}

// History implements Store.
func (s *InMemoryStore) History(sessionID string) []core.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.CopyMessages(s.sessions[sessionID])
}

// AppendTurn implements Store. Append and trim happen under one lock so
// concurrent requests against the same session id cannot interleave and
// produce a torn trim or an odd-length history.
func (s *InMemoryStore) AppendTurn(sessionID, question, answer string) []core.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[sessionID],
		core.Message{Role: core.RoleUser, Content: question},
		core.Message{Role: core.RoleAssistant, Content: answer},
	)

	// FIFO eviction in whole user/assistant pairs keeps the sequence
	// turn-aligned.
	if max := 2 * s.maxTurns; len(history) > max {
		history = history[len(history)-max:]
	}

	s.sessions[sessionID] = history
	return core.CopyMessages(history)
}
