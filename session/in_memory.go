package session

import (
	"errors"
	"sync"
	"time"
)

// ErrEmptyID is returned when a lookup is attempted without a session id.
var ErrEmptyID = errors.New("session id is empty")

// Factory creates the value stored for a new session.
type Factory[T any] func(sessionID string) (T, error)

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

// InMemoryStore is a volatile store keeping one value per session id in a
// process local map. It is safe for concurrent access.
type InMemoryStore[T any] struct {
	mu       sync.Mutex
	sessions map[string]*entry[T]
	factory  Factory[T]
	now      func() time.Time
}

// NewInMemoryStore constructs an empty store that builds values with factory.
func NewInMemoryStore[T any](factory Factory[T]) *InMemoryStore[T] {
	return &InMemoryStore[T]{
		sessions: make(map[string]*entry[T]),
		factory:  factory,
		now:      time.Now,
	}
}

// Get returns the value for sessionID, creating it lazily.
func (s *InMemoryStore[T]) Get(sessionID string) (T, error) {
	var zero T
	if sessionID == "" {
		return zero, ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[sessionID]; ok {
		e.lastSeen = s.now()
		return e.value, nil
	}

	v, err := s.factory(sessionID)
	if err != nil {
		return zero, err
	}
	s.sessions[sessionID] = &entry[T]{value: v, lastSeen: s.now()}

	return v, nil
}

// Delete drops a session. It reports whether the session existed.
func (s *InMemoryStore[T]) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return ok
}

// Len returns the number of live sessions.
func (s *InMemoryStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune drops every session not used within maxIdle and returns how many
// were removed.
func (s *InMemoryStore[T]) Prune(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
