// Package gemini provides a model.Model implementation using the Google
// generative-ai SDK. It is the single-prompt style provider: conversation
// history is flattened into a "Previous conversation:" transcript prefixed to
// the prompt body, carrying the same turns in the same order as the
// structured providers.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/hupe1980/taleweaver/model"
)

// Options configure the Gemini model adapter.
type Options struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
	APIKey          string
}

// Model wraps the Gemini API behind the generic model.Model interface.
type Model struct {
	client *genai.Client
	opts   Options
}

// NewModel creates a new Gemini model. The underlying client performs network
// setup, so construction takes a context and can fail.
func NewModel(ctx context.Context, optFns ...func(o *Options)) (*Model, error) {
	opts := Options{
		Model:           "gemini-1.5-flash",
		Temperature:     0.8,
		MaxOutputTokens: 1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Model{client: client, opts: opts}, nil
}

// Generate implements model.Model.
func (m *Model) Generate(ctx context.Context, req model.Request) (string, error) {
	gm := m.client.GenerativeModel(m.opts.Model)
	gm.GenerationConfig = genai.GenerationConfig{
		Temperature:     genai.Ptr(m.opts.Temperature),
		MaxOutputTokens: genai.Ptr(m.opts.MaxOutputTokens),
	}

	prompt := req.Instructions
	if transcript := req.Transcript(); transcript != "" {
		prompt = transcript + "\n" + prompt
	}

	resp, err := gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini api error: no candidates returned")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

// Info returns metadata describing this Gemini model implementation.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.opts.Model, Provider: "gemini"}
}

// Close releases the underlying client connection.
func (m *Model) Close() error { return m.client.Close() }
