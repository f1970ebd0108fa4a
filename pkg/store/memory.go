package store

import (
	"context"
	"errors"
	"sync"
)

// MemoryStore keeps results in a map.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[string]Result
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{results: make(map[string]Result)}
}

func (s *MemoryStore) Save(_ context.Context, r *Result) error {
	if r == nil || r.ID == "" {
		return errors.New("result has no id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[r.ID] = *r
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, id)
	return nil
}

// Len returns the number of stored results.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
