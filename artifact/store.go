// Package artifact provides content-addressed storage for generated media.
// An artifact's identity is the hash of its generation input (the image
// prompt or the cleaned narration text), so identical inputs map to the same
// storage path and repeats are idempotent: writers save unconditionally but
// the hash namespace makes the overwrite a no-op in effect.
package artifact

import (
	"crypto/md5"
	"encoding/hex"
)

// Kind distinguishes the media types stored.
type Kind string

const (
	// KindImage is a generated illustration.
	KindImage Kind = "image"
	// KindAudio is a generated narration.
	KindAudio Kind = "audio"
)

// Artifact describes a stored media file.
type Artifact struct {
	Kind        Kind   `json:"kind"`
	ContentHash string `json:"content_hash"`
	StoragePath string `json:"storage_path"`
}

// URL returns the relative static URL referencing the artifact.
func (a Artifact) URL() string {
	return "/static/" + dirFor(a.Kind) + "/" + a.ContentHash + extFor(a.Kind)
}

// Store persists media artifacts keyed by content hash. No eviction is
// performed; artifacts are static assets that persist across requests.
type Store interface {
	// Save writes (or overwrites) the artifact bytes for the given kind and
	// content hash. Concurrent saves of the same hash carry identical
	// content, so last-writer-wins is harmless and is not serialized.
	Save(kind Kind, contentHash string, data []byte) (Artifact, error)

	// Get returns the stored bytes or ErrNotFound.
	Get(kind Kind, contentHash string) ([]byte, error)
}

// ContentHash returns the deterministic hash of a generation input.
func ContentHash(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}

func dirFor(kind Kind) string {
	if kind == KindAudio {
		return "audio"
	}
	return "images"
}

func extFor(kind Kind) string {
	if kind == KindAudio {
		return ".mp3"
	}
	return ".png"
}
