package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MaxNarrationLen caps the cleaned text submitted for narration.
const MaxNarrationLen = 500

// DefaultAudioTimeout bounds a single narration call.
const DefaultAudioTimeout = 30 * time.Second

const (
	modelMultilingual = "eleven_multilingual_v2"
	modelMonolingual  = "eleven_monolingual_v1"
)

// AudioClient calls a narration endpoint that accepts an HTTP POST with text,
// voice id and acoustic-model variant and returns raw audio bytes.
type AudioClient struct {
	baseURL    string
	apiKey     string
	voiceID    string
	stability  float64
	similarity float64
	httpClient *http.Client
}

// AudioOptions configure an AudioClient.
type AudioOptions struct {
	VoiceID         string
	Stability       float64
	SimilarityBoost float64
	Timeout         time.Duration
	HTTPClient      *http.Client
}

// NewAudioClient constructs a client for the given endpoint base URL; the
// voice id is appended as the final path segment.
func NewAudioClient(baseURL, apiKey string, optFns ...func(o *AudioOptions)) *AudioClient {
	opts := AudioOptions{
		VoiceID:         "21m00Tcm4TlvDq8ikWAM",
		Stability:       0.5,
		SimilarityBoost: 0.75,
		Timeout:         DefaultAudioTimeout,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &AudioClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		voiceID:    opts.VoiceID,
		stability:  opts.Stability,
		similarity: opts.SimilarityBoost,
		httpClient: httpClient,
	}
}

type narrationRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Generate narrates the (already cleaned) text and returns the raw audio
// bytes. A multilingual acoustic model is selected for non-English targets.
func (c *AudioClient) Generate(ctx context.Context, text, language string) ([]byte, error) {
	modelID := modelMonolingual
	if language != "en" {
		modelID = modelMultilingual
	}

	body, err := json.Marshal(narrationRequest{
		Text:          truncate(text, MaxNarrationLen),
		ModelID:       modelID,
		VoiceSettings: voiceSettings{Stability: c.stability, SimilarityBoost: c.similarity},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+c.voiceID, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("xi-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("narration API error [%d]: %s", resp.StatusCode, string(errBody))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}
