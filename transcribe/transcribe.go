// Package transcribe turns recorded speech into text for the chat pipeline.
// The decoding backend is pluggable; the service layer owns the guard rails
// around it (minimum recording size, empty-output coaching messages).
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/taleweaver/logging"
)

// MinAudioBytes is the smallest recording worth decoding. Anything below it is
// almost certainly a mis-click rather than speech.
const MinAudioBytes = 1000

// User-facing coaching messages returned instead of an error when the
// recording itself is the problem.
const (
	MsgTooShort = "Recording too short or empty. Please speak clearly for at least 1-2 seconds."
	MsgNoSpeech = "Sorry, I couldn't hear anything clearly. Please speak louder and try again."
)

// ErrDecoderUnavailable is returned when no decoding backend is configured.
var ErrDecoderUnavailable = errors.New("transcribe: no decoder configured")

// Decoder converts an audio file on disk into text.
type Decoder interface {
	Decode(ctx context.Context, path string) (string, error)
}

// Service wraps a Decoder with input validation and output normalization.
type Service struct {
	decoder Decoder
	logger  logging.Logger
}

// ServiceOptions configure a Service.
type ServiceOptions struct {
	Logger logging.Logger
}

// NewService constructs a Service around the given decoder. The decoder may be
// nil; Transcribe then fails with ErrDecoderUnavailable.
func NewService(decoder Decoder, optFns ...func(o *ServiceOptions)) *Service {
	opts := ServiceOptions{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Service{
		decoder: decoder,
		logger:  opts.Logger,
	}
}

// Transcribe decodes the audio file at path. Undersized recordings and silent
// recordings come back as coaching messages, not errors; only infrastructure
// problems surface as errors.
func (s *Service) Transcribe(ctx context.Context, path string) (string, error) {
	if s.decoder == nil {
		return "", ErrDecoderUnavailable
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("audio file not found: %w", err)
	}

	s.logger.Debug("transcribing audio", "path", path, "bytes", info.Size())

	if info.Size() < MinAudioBytes {
		s.logger.Warn("audio file too small", "bytes", info.Size())
		return MsgTooShort, nil
	}

	text, err := s.decoder.Decode(ctx, path)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.Warn("transcription returned empty text")
		return MsgNoSpeech, nil
	}

	s.logger.Info("audio transcribed", "chars", len(text))
	return text, nil
}
