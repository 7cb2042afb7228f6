// Package taleweaver provides a high-level façade over the response engine
// and its services (retrieval, text generation, media, sessions, artifacts &
// logging) for building a storytelling chat backend. Most applications
// interact with this package by:
//  1. Creating a Taleweaver via New() with a corpus retriever and a text model
//  2. Optionally attaching a media coordinator and durable stores
//  3. Calling Respond() once per chat turn
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics concise. All defaults are safe for local development and testing;
// production deployments typically supply a disk-backed artifact store and a
// structured logger.
package taleweaver

import (
	"context"
	"fmt"

	"github.com/hupe1980/taleweaver/core"
	"github.com/hupe1980/taleweaver/engine"
	"github.com/hupe1980/taleweaver/logging"
	"github.com/hupe1980/taleweaver/media"
	"github.com/hupe1980/taleweaver/model"
	"github.com/hupe1980/taleweaver/model/anthropic"
	"github.com/hupe1980/taleweaver/model/gemini"
	"github.com/hupe1980/taleweaver/model/openai"
	"github.com/hupe1980/taleweaver/prompt"
	"github.com/hupe1980/taleweaver/relevance"
	"github.com/hupe1980/taleweaver/session"
)

// Options configures the Taleweaver instance.
type Options struct {
	// Composer builds generation requests.
	Composer *prompt.Composer
	// Gate decides corpus relevance.
	Gate *relevance.Gate
	// Media runs image and audio subtasks. Nil disables media.
	Media *media.Coordinator
	// Sessions stores conversation history (defaults to in-memory).
	Sessions session.Store
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
	// TopK is the retrieval depth per question.
	TopK int
}

// Taleweaver is the high-level façade aggregating the engine and services.
type Taleweaver struct {
	engine *engine.Engine
}

// New creates a new Taleweaver instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(retriever core.Retriever, textModel model.Model, optFns ...func(o *Options)) *Taleweaver {
	opts := Options{
		Composer: prompt.NewComposer(),
		Gate:     relevance.NewGate(),
		Sessions: session.NewInMemoryStore(),
		Logger:   logging.NoOpLogger{},
		TopK:     engine.DefaultTopK,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	eng := engine.New(retriever, textModel, func(o *engine.Options) {
		o.Composer = opts.Composer
		o.Gate = opts.Gate
		o.Media = opts.Media
		o.Sessions = opts.Sessions
		o.Logger = opts.Logger
		o.TopK = opts.TopK
	})

	return &Taleweaver{engine: eng}
}

// Respond runs one full chat turn.
func (t *Taleweaver) Respond(ctx context.Context, req core.ChatRequest) (*core.ChatResult, error) {
	return t.engine.Respond(ctx, req)
}

// Engine exposes the underlying engine for transports that register it
// directly.
func (t *Taleweaver) Engine() *engine.Engine { return t.engine }

// NewModel constructs a text model for the named provider ("openai", "gemini"
// or "anthropic"). An empty API key yields no model rather than an error so
// callers can run text-degraded; an unknown provider is ErrNoProvider.
func NewModel(ctx context.Context, provider, apiKey string) (model.Model, error) {
	if apiKey == "" {
		return nil, nil
	}

	switch provider {
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			o.APIKey = apiKey
		}), nil
	case "gemini":
		m, err := gemini.NewModel(ctx, func(o *gemini.Options) {
			o.APIKey = apiKey
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.APIKey = apiKey
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrNoProvider, provider)
	}
}
