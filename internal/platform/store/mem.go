package store

import (
	"context"
	"sync"
)

// MemStore is an in-process bucket store used by tests and the "memory"
// storage driver.
type MemStore struct {
	mu      sync.RWMutex
	buckets map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{buckets: make(map[string][]byte)}
}

func (s *MemStore) LoadBucket(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.buckets[name]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemStore) SaveBucket(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.buckets[name] = stored
	return nil
}
