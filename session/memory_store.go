package session

import (
	"context"
	"sync"
)

// MemoryStore is a non-durable Store for tests and embedders that opt out
// of persistence.
type MemoryStore struct {
	mu  sync.Mutex
	rec *Record
}

// NewMemoryStore describes the newmemorystore operation and its observable behavior.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Hydrate describes the hydrate operation and its observable behavior.
func (s *MemoryStore) Hydrate(ctx context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.rec.Valid() {
		return nil, nil
	}
	return s.rec.clone(), nil
}

// Persist describes the persist operation and its observable behavior.
func (s *MemoryStore) Persist(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec.clone()
	return nil
}

// Clear describes the clear operation and its observable behavior.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = nil
	return nil
}
