package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ id string }

func TestInMemoryStore_GetCreatesOnce(t *testing.T) {
	calls := 0
	s := NewInMemoryStore(func(id string) (*counter, error) {
		calls++
		return &counter{id: id}, nil
	})

	a, err := s.Get("a")
	require.NoError(t, err)
	again, err := s.Get("a")
	require.NoError(t, err)
	b, err := s.Get("b")
	require.NoError(t, err)

	assert.Same(t, a, again)
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, s.Len())
}

func TestInMemoryStore_EmptyID(t *testing.T) {
	s := NewInMemoryStore(func(string) (int, error) { return 1, nil })
	_, err := s.Get("")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestInMemoryStore_FactoryError(t *testing.T) {
	boom := errors.New("boom")
	s := NewInMemoryStore(func(string) (int, error) { return 0, boom })
	_, err := s.Get("x")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.Len())
}

func TestInMemoryStore_DeleteAndPrune(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewInMemoryStore(func(id string) (string, error) { return id, nil })
	s.now = func() time.Time { return now }

	_, _ = s.Get("old")
	now = now.Add(time.Hour)
	_, _ = s.Get("fresh")

	assert.Equal(t, 1, s.Prune(30*time.Minute))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Delete("fresh"))
	assert.False(t, s.Delete("fresh"))
}

func TestInMemoryStore_Concurrent(t *testing.T) {
	s := NewInMemoryStore(func(id string) (*counter, error) { return &counter{id: id}, nil })
	var wg sync.WaitGroup
	results := make([]*counter, 20)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = s.Get("shared")
		}()
	}
	wg.Wait()
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}
