package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DiskStore persists artifacts as hash-named files under a base directory
// (<base>/images/<hash>.png, <base>/audio/<hash>.mp3), matching the static
// URL layout served by the transport layer. Writes are append-only-by-hash;
// no retention limit or eviction is enforced.
type DiskStore struct {
	baseDir string
}

// NewDiskStore creates the media directories if needed and returns a store
// rooted at baseDir.
func NewDiskStore(baseDir string) (*DiskStore, error) {
	for _, kind := range []Kind{KindImage, KindAudio} {
		if err := os.MkdirAll(filepath.Join(baseDir, dirFor(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create media dir: %w", err)
		}
	}
	return &DiskStore{baseDir: baseDir}, nil
}

// Save implements Store. The write is unconditional; racing writers of the
// same hash produce identical content, so no locking is needed.
func (s *DiskStore) Save(kind Kind, contentHash string, data []byte) (Artifact, error) {
	path := s.pathFor(kind, contentHash)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Artifact{}, fmt.Errorf("failed to write artifact: %w", err)
	}
	return Artifact{Kind: kind, ContentHash: contentHash, StoragePath: path}, nil
}

// Get implements Store.
func (s *DiskStore) Get(kind Kind, contentHash string) ([]byte, error) {
	data, err := os.ReadFile(s.pathFor(kind, contentHash))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return data, nil
}

// BaseDir returns the root directory holding the media subdirectories.
func (s *DiskStore) BaseDir() string { return s.baseDir }

func (s *DiskStore) pathFor(kind Kind, contentHash string) string {
	return filepath.Join(s.baseDir, dirFor(kind), contentHash+extFor(kind))
}
