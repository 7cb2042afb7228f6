package artifact

import "sync"

// InMemoryStore is a trivial in-process Store implementation useful for tests
// and single-process prototypes. Data is copied on save / retrieval to avoid
// accidental external mutation of internal buffers.
type InMemoryStore struct {
	mu        sync.RWMutex
	artifacts map[Kind]map[string][]byte // kind -> contentHash -> data
}

// NewInMemoryStore returns an empty in-memory artifact store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{artifacts: make(map[Kind]map[string][]byte)}
}

// Save implements Store. The input slice is copied before storage.
func (s *InMemoryStore) Save(kind Kind, contentHash string, data []byte) (Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.artifacts[kind]; !ok {
		s.artifacts[kind] = make(map[string][]byte)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.artifacts[kind][contentHash] = cp
	return Artifact{Kind: kind, ContentHash: contentHash, StoragePath: contentHash + extFor(kind)}, nil
}

// Get implements Store.
func (s *InMemoryStore) Get(kind Kind, contentHash string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.artifacts[kind]
	if !ok {
		return nil, ErrNotFound
	}
	data, ok := m[contentHash]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}
