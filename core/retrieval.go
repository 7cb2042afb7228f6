package core

import (
	"context"
	"errors"
)

// Chunk is a retrievable unit of corpus text with its source metadata and the
// similarity score it achieved against the query. Chunks are produced by the
// external search collaborator in descending score order and are never
// mutated by taleweaver.
type Chunk struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
	Score    float64        `json:"score"` // similarity in [0,1]
}

// Source returns the document identifier recorded in the chunk metadata, or
// "unknown" when the indexer did not attach one.
func (c Chunk) Source() string {
	if s, ok := c.Metadata["source"].(string); ok && s != "" {
		return s
	}
	return "unknown"
}

// ErrIndexUninitialized is returned by Retriever implementations whose
// underlying corpus index has not been built yet. The engine surfaces it to
// the transport layer as a service-unavailable condition.
var ErrIndexUninitialized = errors.New("corpus index not initialized")

// Retriever is the consumed contract of the external semantic-search
// subsystem. Implementations return at most topK chunks ordered by
// descending similarity.
type Retriever interface {
	// Search retrieves the chunks most similar to the query.
	Search(ctx context.Context, query string, topK int) ([]Chunk, error)

	// Ready reports whether the index has been initialized.
	Ready() bool
}
