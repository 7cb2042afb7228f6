// Package relevance decides whether a set of retrieved chunks actually
// answers a query. The gate is binary and applies to the whole retrieved set,
// not per chunk: it compares the arithmetic mean of the similarity scores
// against a threshold. Lower thresholds favor recall, higher favor precision.
package relevance

import "github.com/hupe1980/taleweaver/core"

// DefaultThreshold is the empirically chosen mean-score cutoff.
const DefaultThreshold = 0.25

// Gate evaluates retrieval results against a fixed threshold. It is a pure
// function of its input and safe for concurrent use.
type Gate struct {
	threshold float64
}

// Options configure a Gate.
type Options struct {
	// Threshold is the exclusive lower bound the mean similarity score must
	// exceed for the set to count as relevant.
	Threshold float64
}

// NewGate constructs a Gate with the default threshold unless overridden.
func NewGate(optFns ...func(o *Options)) *Gate {
	opts := Options{Threshold: DefaultThreshold}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Gate{threshold: opts.Threshold}
}

// WithThreshold overrides the relevance threshold.
func WithThreshold(t float64) func(o *Options) {
	return func(o *Options) { o.Threshold = t }
}

// IsRelevant reports whether the mean similarity score of the chunks exceeds
// the threshold. An empty set is never relevant.
func (g *Gate) IsRelevant(chunks []core.Chunk) bool {
	if len(chunks) == 0 {
		return false
	}
	var sum float64
	for _, c := range chunks {
		sum += c.Score
	}
	return sum/float64(len(chunks)) > g.threshold
}
