package artifact

import (
	"context"
	"sync"

	"github.com/hupe1980/travelmesh/core"
)

// InMemoryStore is a trivial in-process Store implementation useful for
// tests, examples and single-process prototypes. Records are copied on save
// and retrieval to avoid accidental external mutation.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string
}

// NewInMemoryStore returns an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]Record)}
}

// Save implements Store.
func (s *InMemoryStore) Save(_ context.Context, rec *Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := core.NewID()
	s.records[id] = *rec
	s.order = append(s.order, id)
	return id, nil
}

// Get implements Store.
func (s *InMemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// List implements Store.
func (s *InMemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out, nil
}
