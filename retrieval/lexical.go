// Package retrieval ships a self-contained lexical retriever over a directory
// of plain-text documents. Scoring is term overlap, not embeddings; it exists
// so the server runs end to end out of the box. Deployments with a vector
// index plug in their own implementation of the retriever contract.
package retrieval

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/taleweaver/core"
)

// maxChunkLen bounds a single chunk; paragraphs are packed greedily up to it.
const maxChunkLen = 1200

var wordRe = regexp.MustCompile(`[\p{L}\p{N}']+`)

// LexicalRetriever scores chunks by weighted term overlap with the query.
// Immutable after Load, safe for concurrent searches.
type LexicalRetriever struct {
	mu     sync.RWMutex
	chunks []indexedChunk
}

type indexedChunk struct {
	chunk core.Chunk
	terms map[string]int
	total int
}

// NewLexicalRetriever returns an empty retriever; call Load before searching.
func NewLexicalRetriever() *LexicalRetriever {
	return &LexicalRetriever{}
}

// Load reads every .txt and .md file under dir, splits each into
// paragraph-packed chunks and indexes them. Calling Load again replaces the
// index.
func (r *LexicalRetriever) Load(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read corpus dir: %w", err)
	}

	var chunks []indexedChunk
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		for _, text := range splitChunks(string(data)) {
			terms, total := termCounts(text)
			if total == 0 {
				continue
			}
			chunks = append(chunks, indexedChunk{
				chunk: core.Chunk{
					Text:     text,
					Metadata: map[string]any{"source": entry.Name()},
				},
				terms: terms,
				total: total,
			})
		}
	}

	r.mu.Lock()
	r.chunks = chunks
	r.mu.Unlock()
	return nil
}

// Ready implements core.Retriever.
func (r *LexicalRetriever) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chunks) > 0
}

// Len returns the number of indexed chunks.
func (r *LexicalRetriever) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chunks)
}

// Search implements core.Retriever. Results come back sorted by descending
// score; scores are normalized into [0, 1].
func (r *LexicalRetriever) Search(_ context.Context, query string, topK int) ([]core.Chunk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.chunks) == 0 {
		return nil, core.ErrIndexUninitialized
	}

	queryTerms, queryTotal := termCounts(query)
	if queryTotal == 0 {
		return []core.Chunk{}, nil
	}

	scored := make([]core.Chunk, 0, len(r.chunks))
	for _, ic := range r.chunks {
		overlap := 0
		for term, n := range queryTerms {
			if ic.terms[term] > 0 {
				overlap += n
			}
		}
		c := ic.chunk
		c.Score = float64(overlap) / float64(queryTotal)
		scored = append(scored, c)
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

var _ core.Retriever = (*LexicalRetriever)(nil)

// splitChunks packs paragraphs greedily into chunks of at most maxChunkLen.
// Oversized single paragraphs become their own chunk rather than being split
// mid-sentence.
func splitChunks(text string) []string {
	paragraphs := strings.Split(text, "\n\n")

	var (
		chunks  []string
		current strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(p) > maxChunkLen {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
	}
	flush()
	return chunks
}

func termCounts(text string) (map[string]int, int) {
	terms := map[string]int{}
	total := 0
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if stopwords[w] {
			continue
		}
		terms[w]++
		total++
	}
	return terms, total
}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "did": true, "do": true, "does": true,
	"for": true, "from": true, "had": true, "has": true, "have": true,
	"he": true, "her": true, "his": true, "how": true, "i": true, "in": true,
	"is": true, "it": true, "its": true, "of": true, "on": true, "or": true,
	"she": true, "that": true, "the": true, "their": true, "them": true,
	"they": true, "this": true, "to": true, "was": true, "were": true,
	"what": true, "when": true, "where": true, "which": true, "who": true,
	"why": true, "will": true, "with": true, "you": true,
}
