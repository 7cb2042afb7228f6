// Package prompt builds language- and history-aware generation requests from
// a question and retrieved corpus context. The output is provider agnostic;
// adaptation to the provider wire format happens in the model subpackages.
package prompt

import (
	"fmt"
	"strings"

	"github.com/hupe1980/taleweaver/core"
	"github.com/hupe1980/taleweaver/model"
)

// DefaultHistoryWindow bounds the conversation history included in a request
// to the last 6 messages (3 user/assistant exchanges). This window is a fixed
// policy, not configurable per call.
const DefaultHistoryWindow = 6

// Languages maps supported language codes to their display names. Codes not
// present here fall back to English behavior.
var Languages = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"hi": "Hindi",
}

// DisplayName resolves a language code to its display name, defaulting to
// English for unknown codes.
func DisplayName(code string) string {
	if name, ok := Languages[code]; ok {
		return name
	}
	return "English"
}

const instructionsTemplate = `You are a witty storyteller who knows these classic tales inside out. Answer the question using ONLY the story excerpts below. Be playful, vivid and a little mischievous, but stay faithful to what the excerpts actually say.

Story excerpts:
%s

Question: %s

Answer as the storyteller:`

// Composer assembles model requests. It is stateless and safe for concurrent
// use.
type Composer struct {
	historyWindow int
}

// Options configure a Composer.
type Options struct {
	// HistoryWindow is the maximum number of trailing history messages
	// included in a request.
	HistoryWindow int
}

// NewComposer constructs a Composer with the default history window unless
// overridden.
func NewComposer(optFns ...func(o *Options)) *Composer {
	opts := Options{HistoryWindow: DefaultHistoryWindow}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Composer{historyWindow: opts.HistoryWindow}
}

// WithHistoryWindow overrides the history window.
func WithHistoryWindow(n int) func(o *Options) {
	return func(o *Options) { o.HistoryWindow = n }
}

// Context concatenates the chunk texts in retrieval rank order with a
// blank-line separator.
func Context(chunks []core.Chunk) string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return strings.Join(texts, "\n\n")
}

// Compose builds the generation request. For non-English target languages an
// explicit instruction naming the resolved display language is appended; for
// English no such instruction is added. History is truncated to the trailing
// window before inclusion, regardless of provider.
func (c *Composer) Compose(question string, chunks []core.Chunk, language string, history []core.Message) model.Request {
	instructions := fmt.Sprintf(instructionsTemplate, Context(chunks), question)

	if language != "en" {
		name := DisplayName(language)
		instructions += fmt.Sprintf(
			"\n\n**CRITICAL: You MUST respond ENTIRELY in %s. Do NOT use English. Translate everything to %s.**",
			name, name,
		)
	}

	return model.Request{
		Instructions: instructions,
		Messages:     c.windowed(history),
	}
}

func (c *Composer) windowed(history []core.Message) []core.Message {
	if len(history) > c.historyWindow {
		history = history[len(history)-c.historyWindow:]
	}
	return core.CopyMessages(history)
}
