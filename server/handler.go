// Package server exposes the storytelling engine over HTTP. Handlers stay
// thin: request decoding, status mapping and temp-file bookkeeping live here,
// everything else is delegated to the engine and the transcription service.
package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hupe1980/taleweaver/core"
	"github.com/hupe1980/taleweaver/engine"
	"github.com/hupe1980/taleweaver/logging"
	"github.com/hupe1980/taleweaver/prompt"
	"github.com/hupe1980/taleweaver/transcribe"
)

// DefaultSuggestions are the canned questions offered to a fresh frontend.
var DefaultSuggestions = []string{
	"How did Alice end up in Wonderland?",
	"What happened at the Mad Hatter's tea party?",
	"Why is the Queen of Hearts so angry?",
	"How did Gulliver get captured in Lilliput?",
	"What did the Cheshire Cat tell Alice?",
	"What adventures did Gulliver have among the giants?",
}

// Handler handles HTTP requests.
type Handler struct {
	engine      *engine.Engine
	transcriber *transcribe.Service
	retriever   core.Retriever
	suggestions []string
	services    map[string]bool
	staticDir   string
	logger      logging.Logger
}

// HandlerOptions configure a Handler.
type HandlerOptions struct {
	// Transcriber serves /api/transcribe. Nil disables transcription with a
	// 503 response.
	Transcriber *transcribe.Service
	// Suggestions override the canned frontend questions.
	Suggestions []string
	// Services is reported verbatim in the health response (api name ->
	// configured).
	Services map[string]bool
	// StaticDir, when set, is served under /static.
	StaticDir string
	// Logger receives request diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// NewHandler creates a new handler around the engine. The retriever is only
// consulted for health reporting.
func NewHandler(eng *engine.Engine, retriever core.Retriever, optFns ...func(o *HandlerOptions)) *Handler {
	opts := HandlerOptions{
		Suggestions: DefaultSuggestions,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Handler{
		engine:      eng,
		transcriber: opts.Transcriber,
		retriever:   retriever,
		suggestions: opts.Suggestions,
		services:    opts.Services,
		staticDir:   opts.StaticDir,
		logger:      opts.Logger,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/api/health", h.Health)
	e.GET("/api/languages", h.Languages)
	e.GET("/api/suggestions", h.Suggestions)
	e.POST("/api/chat", h.Chat)
	e.POST("/api/transcribe", h.Transcribe)

	if h.staticDir != "" {
		e.Static("/static", h.staticDir)
	}
}

// Root returns a liveness summary.
// GET /
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "running",
		"name":   "taleweaver",
		"ready":  h.retriever != nil && h.retriever.Ready(),
	})
}

// Health returns a detailed health report.
// GET /api/health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "healthy",
		"knowledge_base": map[string]any{
			"initialized": h.retriever != nil && h.retriever.Ready(),
		},
		"apis": h.services,
	})
}

// Languages lists the supported response languages.
// GET /api/languages
func (h *Handler) Languages(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"languages": prompt.Languages})
}

// Suggestions lists canned questions for the frontend.
// GET /api/suggestions
func (h *Handler) Suggestions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"suggestions": h.suggestions})
}

// Chat runs one conversational turn.
// POST /api/chat
func (h *Handler) Chat(c echo.Context) error {
	req := core.ChatRequest{
		GenerateImage: true,
		GenerateAudio: true,
		Language:      "en",
		SessionID:     "default",
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Question == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "question is required"})
	}
	req.Origin = c.Scheme() + "://" + c.Request().Host

	result, err := h.engine.Respond(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, engine.ErrRetrievalUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"error": "Knowledge base not initialized. Please add PDF files.",
			})
		}
		h.logger.Error("chat request failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

// Transcribe converts an uploaded recording to text.
// POST /api/transcribe
func (h *Handler) Transcribe(c echo.Context) error {
	if h.transcriber == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "transcription not configured"})
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "audio file is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to read upload"})
	}
	defer src.Close()

	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = ".webm"
	}
	tempPath := filepath.Join(os.TempDir(), "recording_"+uuid.New().String()+ext)

	dst, err := os.Create(tempPath)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to buffer upload"})
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(tempPath)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to buffer upload"})
	}
	dst.Close()
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			h.logger.Warn("could not delete temp file", "path", tempPath, "error", err.Error())
		}
	}()

	text, err := h.transcriber.Transcribe(c.Request().Context(), tempPath)
	if err != nil {
		h.logger.Error("transcription failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Transcription failed: " + err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"text": text})
}
