package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process store for development and tests. Records are
// kept until overwritten or deleted; the ttl hint is ignored.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Get retrieves the raw entry bytes.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Set stores the raw entry bytes.
func (s *MemoryStore) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.entries[key] = stored
	return nil
}

// Delete removes the entry.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
