// Package session keeps per-session bounded conversation history. History is
// entirely in-memory and lives for the process lifetime; sessions are created
// lazily on first use of a session id and are never persisted.
package session

import "github.com/hupe1980/taleweaver/core"

// DefaultMaxTurns bounds the stored history to the newest 10 exchanges
// (20 messages) per session.
const DefaultMaxTurns = 10

// Store tracks conversation history per caller-supplied session id. The
// append-then-trim sequence must be atomic with respect to other mutations of
// the same session id.
type Store interface {
	// History returns a snapshot of the session's messages, oldest first.
	// An unknown session id yields an empty history.
	History(sessionID string) []core.Message

	// AppendTurn atomically appends the (user question, assistant answer)
	// pair and trims the history to the turn cap, evicting whole pairs from
	// the oldest end. It returns the post-trim history snapshot.
	AppendTurn(sessionID, question, answer string) []core.Message
}
