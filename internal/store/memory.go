package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and as a fallback when no
// database path is available. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string

	// GetErr and SetErr, when set, are returned by the respective methods.
	// Used to exercise persistence-failure paths in tests.
	GetErr error
	SetErr error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the stored value and whether the key exists.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set writes or overwrites the value for a key.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.values[key] = value
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
