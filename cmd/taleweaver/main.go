package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hupe1980/taleweaver"
	"github.com/hupe1980/taleweaver/artifact"
	"github.com/hupe1980/taleweaver/logging"
	"github.com/hupe1980/taleweaver/media"
	"github.com/hupe1980/taleweaver/retrieval"
	"github.com/hupe1980/taleweaver/server"
	"github.com/hupe1980/taleweaver/session"
	"github.com/hupe1980/taleweaver/transcribe"
)

func main() {
	cfg := server.Load()

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  logLevel(cfg.LogLevel),
		Format: cfg.LogFormat,
		Output: os.Stdout,
	})

	logger.Info("starting taleweaver", "host", cfg.Host, "port", cfg.Port)

	// Corpus
	retriever := retrieval.NewLexicalRetriever()
	if err := retriever.Load(cfg.CorpusDir); err != nil {
		logger.Warn("corpus not loaded", "dir", cfg.CorpusDir, "error", err.Error())
	}
	if retriever.Ready() {
		logger.Info("knowledge base loaded", "chunks", retriever.Len())
	} else {
		logger.Error("no corpus documents found, chat will be unavailable", "dir", cfg.CorpusDir)
	}

	// Text generation
	ctx := context.Background()
	textModel, err := taleweaver.NewModel(ctx, cfg.LLMProvider, providerKey(cfg))
	if err != nil {
		log.Fatalf("failed to initialize text model: %v", err)
	}
	if textModel == nil {
		logger.Warn("no LLM API key configured, answers will be degraded")
	}

	// Media
	store, err := artifact.NewDiskStore(cfg.StaticDir)
	if err != nil {
		log.Fatalf("failed to initialize artifact store: %v", err)
	}
	var imageClient *media.ImageClient
	if cfg.ImageEnabled {
		imageClient = media.NewImageClient(cfg.ImageAPIURL)
	}
	var audioClient *media.AudioClient
	if cfg.AudioEnabled && cfg.ElevenLabsAPIKey != "" {
		audioClient = media.NewAudioClient(cfg.AudioAPIURL, cfg.ElevenLabsAPIKey, func(o *media.AudioOptions) {
			o.VoiceID = cfg.VoiceID
		})
	}
	coordinator := media.NewCoordinator(imageClient, audioClient, store, func(o *media.CoordinatorOptions) {
		o.Logger = logger.WithComponent("media")
	})

	// Transcription
	var transcriber *transcribe.Service
	if cfg.WhisperAPIURL != "" {
		decoder := transcribe.NewWhisperDecoder(cfg.WhisperAPIURL, func(o *transcribe.WhisperOptions) {
			o.APIKey = cfg.WhisperAPIKey
		})
		transcriber = transcribe.NewService(decoder, func(o *transcribe.ServiceOptions) {
			o.Logger = logger.WithComponent("transcribe")
		})
	}

	// Engine
	tw := taleweaver.New(retriever, textModel, func(o *taleweaver.Options) {
		o.Media = coordinator
		o.Sessions = session.NewInMemoryStore(session.WithMaxTurns(cfg.MaxTurns))
		o.Logger = logger.WithComponent("engine")
	})

	// HTTP
	h := server.NewHandler(tw.Engine(), retriever, func(o *server.HandlerOptions) {
		o.Transcriber = transcriber
		o.StaticDir = cfg.StaticDir
		o.Logger = logger.WithComponent("server")
		o.Services = map[string]bool{
			"llm":        textModel != nil,
			"image":      imageClient != nil,
			"elevenlabs": audioClient != nil,
			"whisper":    transcriber != nil,
		}
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	h.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info("server ready", "addr", fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err.Error())
	}
}

func providerKey(cfg *server.Config) string {
	switch cfg.LLMProvider {
	case "openai":
		return cfg.OpenAIAPIKey
	case "anthropic":
		return cfg.AnthropicAPIKey
	default:
		return cfg.GeminiAPIKey
	}
}

func logLevel(s string) logging.LogLevel {
	switch s {
	case "debug":
		return logging.LogLevelDebug
	case "warn":
		return logging.LogLevelWarn
	case "error":
		return logging.LogLevelError
	default:
		return logging.LogLevelInfo
	}
}
