package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultImageTimeout bounds a single image generation call.
const DefaultImageTimeout = 30 * time.Second

// ImageClient calls an image generation endpoint that accepts a URL-encoded
// prompt via HTTP GET and returns raw image bytes.
type ImageClient struct {
	baseURL    string
	query      string
	httpClient *http.Client
}

// ImageOptions configure an ImageClient.
type ImageOptions struct {
	// Query is the fixed query string appended to every request
	// (dimensions, model, rendering flags).
	Query string
	// Timeout bounds each generation call.
	Timeout time.Duration
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// NewImageClient constructs a client for the given endpoint base URL. The
// prompt is appended URL-encoded as the last path segment.
func NewImageClient(baseURL string, optFns ...func(o *ImageOptions)) *ImageClient {
	opts := ImageOptions{
		Query:   "width=512&height=512&model=flux&nologo=true&enhance=true",
		Timeout: DefaultImageTimeout,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &ImageClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		query:      opts.Query,
		httpClient: httpClient,
	}
}

// Generate submits the prompt and returns the raw image bytes. A non-200
// status is an error; the caller decides whether to absorb it.
func (c *ImageClient) Generate(ctx context.Context, prompt string) ([]byte, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(prompt)
	if c.query != "" {
		endpoint += "?" + c.query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image API error [%d]", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}
