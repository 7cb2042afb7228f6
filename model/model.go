// Package model defines the provider-agnostic text generation contract.
// Vendor adapters live in subpackages (openai, gemini, anthropic) and are
// selected once at startup; the orchestrator never branches per provider.
package model

import (
	"context"
	"strings"

	"github.com/hupe1980/taleweaver/core"
)

// Request captures the normalized generation input produced by the prompt
// composer. Instructions carries the persona prompt with the retrieved
// context and the question embedded; Messages carries the bounded
// conversation history (oldest first) without the new question.
//
// Structured-message providers prepend Messages as discrete turns before a
// final user turn containing Instructions. Single-prompt providers flatten
// the same history via Transcript and prefix it to Instructions. Both
// renditions carry identical semantic content.
type Request struct {
	Instructions string         `json:"instructions"`
	Messages     []core.Message `json:"messages,omitempty"`
}

// Transcript renders the history as a "Previous conversation:" text block for
// providers that accept only a single prompt string. It returns "" when there
// is no history.
func (r Request) Transcript() string {
	if len(r.Messages) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, m := range r.Messages {
		role := "User"
		if m.Role == core.RoleAssistant {
			role = "Assistant"
		}
		b.WriteString(role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "gemini", "anthropic", "mock"
}

// Model is the minimal interface the orchestrator needs to drive generation.
// A single call is attempted per request; implementations do not retry.
type Model interface {
	// Generate produces the answer text for the request.
	Generate(ctx context.Context, req Request) (string, error)

	// Info returns information about the model implementation.
	Info() Info
}
