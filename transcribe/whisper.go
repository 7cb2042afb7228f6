package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultDecodeTimeout bounds a single decoding call.
const DefaultDecodeTimeout = 60 * time.Second

// WhisperDecoder decodes speech by posting the audio file to a
// whisper-compatible HTTP endpoint and reading the transcription from its
// JSON response.
type WhisperDecoder struct {
	endpoint   string
	model      string
	language   string
	apiKey     string
	httpClient *http.Client
}

// WhisperOptions configure a WhisperDecoder.
type WhisperOptions struct {
	// Model names the transcription model requested from the endpoint.
	Model string
	// Language hints the spoken language for better accuracy.
	Language string
	// APIKey, when set, is sent as a bearer token.
	APIKey string
	// Timeout bounds each decoding call.
	Timeout time.Duration
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

var _ Decoder = (*WhisperDecoder)(nil)

// NewWhisperDecoder constructs a decoder for the given endpoint URL.
func NewWhisperDecoder(endpoint string, optFns ...func(o *WhisperOptions)) *WhisperDecoder {
	opts := WhisperOptions{
		Model:    "whisper-1",
		Language: "en",
		Timeout:  DefaultDecodeTimeout,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &WhisperDecoder{
		endpoint:   endpoint,
		model:      opts.Model,
		language:   opts.Language,
		apiKey:     opts.APIKey,
		httpClient: httpClient,
	}
}

// Decode uploads the audio file as multipart form data and returns the
// transcribed text.
func (d *WhisperDecoder) Decode(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to copy audio data: %w", err)
	}

	_ = writer.WriteField("model", d.model)
	if d.language != "" {
		_ = writer.WriteField("language", d.language)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if d.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.apiKey)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return "", fmt.Errorf("transcription API error [%d]: %s", resp.StatusCode, string(errBody))
	}

	var decoded struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return strings.TrimSpace(decoded.Text), nil
}
