// Package engine orchestrates a chat turn: retrieve context, gate it for
// relevance, generate the answer (or a fallback), run media generation and
// assemble the unified result. Exactly one ChatResult comes out of every turn
// that reaches the pipeline; degraded branches are encoded in the result, not
// as errors.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/taleweaver/core"
	"github.com/hupe1980/taleweaver/logging"
	"github.com/hupe1980/taleweaver/media"
	"github.com/hupe1980/taleweaver/model"
	"github.com/hupe1980/taleweaver/prompt"
	"github.com/hupe1980/taleweaver/relevance"
	"github.com/hupe1980/taleweaver/session"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 5

// sourceSnippetLen bounds the citation snippet taken from each chunk.
const sourceSnippetLen = 200

// errDetailLen bounds how much of a generation error leaks into the apology.
const errDetailLen = 100

// MsgNoModel is returned as the answer when no text model is configured.
const MsgNoModel = "Sorry, text generation is not available. Please configure LLM API key."

// ErrRetrievalUnavailable is returned by Respond when the corpus index is not
// ready; transports map it to a service-unavailable response.
var ErrRetrievalUnavailable = core.ErrIndexUninitialized

// Engine drives the response pipeline. It is safe for concurrent use as long
// as its collaborators are.
type Engine struct {
	retriever core.Retriever
	model     model.Model
	composer  *prompt.Composer
	gate      *relevance.Gate
	media     *media.Coordinator
	sessions  session.Store
	logger    logging.Logger
	topK      int
}

// Options configure an Engine.
type Options struct {
	// Composer builds generation requests. Defaults to a fresh composer.
	Composer *prompt.Composer
	// Gate decides corpus relevance. Defaults to the standard threshold.
	Gate *relevance.Gate
	// Media runs image and audio subtasks. Nil disables media entirely.
	Media *media.Coordinator
	// Sessions stores conversation history. Defaults to an in-memory store.
	Sessions session.Store
	// Logger receives pipeline diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
	// TopK is the retrieval depth per question.
	TopK int
}

// New constructs an Engine around a retriever and a text model. The model may
// be nil; answers then degrade to MsgNoModel while the rest of the pipeline
// still runs.
func New(retriever core.Retriever, textModel model.Model, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Composer: prompt.NewComposer(),
		Gate:     relevance.NewGate(),
		Sessions: session.NewInMemoryStore(),
		Logger:   logging.NoOpLogger{},
		TopK:     DefaultTopK,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{
		retriever: retriever,
		model:     textModel,
		composer:  opts.Composer,
		gate:      opts.Gate,
		media:     opts.Media,
		sessions:  opts.Sessions,
		logger:    opts.Logger,
		topK:      opts.TopK,
	}
}

// Respond runs one full chat turn. It returns an error only when the pipeline
// cannot run at all (retrieval unavailable or failing); every other failure
// mode is folded into the result.
func (e *Engine) Respond(ctx context.Context, req core.ChatRequest) (*core.ChatResult, error) {
	turnID := uuid.New().String()

	language := req.Language
	if language == "" {
		language = "en"
	}

	if e.retriever == nil || !e.retriever.Ready() {
		return nil, core.ErrIndexUninitialized
	}

	e.logger.Debug("chat turn started", "turn_id", turnID, "session_id", req.SessionID, "language", language)

	chunks, err := e.retriever.Search(ctx, req.Question, e.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	if !e.gate.IsRelevant(chunks) {
		e.logger.Info("question outside corpus, using fallback", "turn_id", turnID)
		return e.assemble(ctx, req, FallbackMessage(language), language, false, []core.SourceRef{}), nil
	}

	history := e.sessions.History(req.SessionID)
	answer := e.generate(ctx, req.Question, chunks, language, history)

	return e.assemble(ctx, req, answer, language, true, sourceRefs(chunks)), nil
}

// generate produces the answer text for a relevant question. Generation
// failure is absorbed into an apology; a single attempt is made, no retries.
func (e *Engine) generate(ctx context.Context, question string, chunks []core.Chunk, language string, history []core.Message) string {
	if e.model == nil {
		return MsgNoModel
	}

	modelReq := e.composer.Compose(question, chunks, language, history)

	start := time.Now()
	answer, err := e.model.Generate(ctx, modelReq)
	e.logger.LogModelCall(e.model.Info().Name, time.Since(start), err == nil, err)
	if err != nil {
		detail := err.Error()
		if r := []rune(detail); len(r) > errDetailLen {
			detail = string(r[:errDetailLen])
		}
		return fmt.Sprintf("Oops! My wit machine broke down. Try asking again! 😅 (Error: %s)", detail)
	}

	return strings.TrimSpace(answer)
}

// assemble runs media generation against the final answer text, records the
// turn in the session store and normalizes media URLs against the request
// origin. The fallback branch goes through here too, so even off-corpus turns
// get media and history.
func (e *Engine) assemble(ctx context.Context, req core.ChatRequest, answer, language string, relevant bool, sources []core.SourceRef) *core.ChatResult {
	var mediaResult media.Result
	if e.media != nil {
		mediaResult = e.media.Generate(ctx, media.Request{
			Question: req.Question,
			Answer:   answer,
			Language: language,
			Image:    req.GenerateImage,
			Audio:    req.GenerateAudio,
		})
	}

	history := e.sessions.AppendTurn(req.SessionID, req.Question, answer)

	return &core.ChatResult{
		Answer:     answer,
		ImageURL:   absoluteURL(mediaResult.ImageURL, req.Origin),
		AudioURL:   absoluteURL(mediaResult.AudioURL, req.Origin),
		IsRelevant: relevant,
		Sources:    sources,
		History:    history,
	}
}

func sourceRefs(chunks []core.Chunk) []core.SourceRef {
	refs := make([]core.SourceRef, len(chunks))
	for i, c := range chunks {
		snippet := c.Text
		if r := []rune(snippet); len(r) > sourceSnippetLen {
			snippet = string(r[:sourceSnippetLen])
		}
		refs[i] = core.SourceRef{
			Text:   snippet + "...",
			Source: c.Source(),
			Score:  fmt.Sprintf("%.2f", c.Score),
		}
	}
	return refs
}

// absoluteURL prefixes a relative media URL with the request origin. Best
// effort: an empty origin or an already absolute URL passes through.
func absoluteURL(u *string, origin string) *string {
	if u == nil || origin == "" || !strings.HasPrefix(*u, "/") {
		return u
	}
	abs := strings.TrimSuffix(origin, "/") + *u
	return &abs
}
