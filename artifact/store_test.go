package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var (
	_ Store = (*InMemoryStore)(nil)
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

func sampleRecord(ts time.Time) *Record {
	return &Record{
		Timestamp:          ts,
		UserQuery:          "I want to go to Paris on July 4th",
		Location:           "Paris",
		Date:               "July 4th",
		WeatherResponse:    "3. Weather ...",
		HotelResponse:      "1. Hotels ...",
		RestaurantResponse: "2. Restaurants ...",
		AttractionResponse: "4. Attractions ...",
		FinalResponse:      "Welcome to Paris!",
	}
}

func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ts := time.Date(2025, 7, 1, 9, 30, 15, 0, time.UTC)
	rec := sampleRecord(ts)
	id1, err := s.Save(ctx, rec)
	require.NoError(t, err)
	id2, err := s.Save(ctx, sampleRecord(ts))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	rec.Location = "mutated"
	got, err := s.Get(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, "Paris", got.Location)
	assert.Equal(t, "Welcome to Paris!", got.FinalResponse)
	assert.True(t, ts.Equal(got.Timestamp))

	ids, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{id1, id2}, ids)

	_, err = s.Get(ctx, "travel_guide_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStore(t *testing.T) {
	storeContract(t, NewInMemoryStore())
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "history")
	s := NewFileStore(dir)
	storeContract(t, s)

	ids, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"travel_guide_20250701_093015", "travel_guide_20250701_093015_2"}, ids)

	raw, err := os.ReadFile(filepath.Join(dir, ids[0]+".json"))
	require.NoError(t, err)
	for _, field := range []string{"timestamp", "user_query", "location", "date", "weather_response",
		"hotel_response", "restaurant_response", "attraction_response", "final_response"} {
		assert.Contains(t, string(raw), `"`+field+`"`)
	}

	_, err = s.Get(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestFileStore_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	ids, err := NewFileStore(dir).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileStore_ListOrdersCollisionsNumerically(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ts := time.Date(2025, 7, 1, 9, 30, 15, 0, time.UTC)

	var saved []string
	for range 11 {
		id, err := s.Save(context.Background(), sampleRecord(ts))
		require.NoError(t, err)
		saved = append(saved, id)
	}
	later, err := s.Save(context.Background(), sampleRecord(ts.Add(time.Second)))
	require.NoError(t, err)
	saved = append(saved, later)

	ids, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, ids)
	assert.Equal(t, "travel_guide_20250701_093015_10", ids[9])
	assert.Equal(t, "travel_guide_20250701_093016", ids[11])
}

func TestFileStore_WriteFailureLeavesNoFile(t *testing.T) {
	orig := writeGuide
	t.Cleanup(func() { writeGuide = orig })
	writeGuide = func(*os.File, []byte) error { return errors.New("disk full") }

	dir := t.TempDir()
	s := NewFileStore(dir)
	_, err := s.Save(context.Background(), sampleRecord(time.Now()))
	require.ErrorContains(t, err, "disk full")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	ids, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "guides.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	storeContract(t, s)
}

func TestInMemoryStore_Concurrency(t *testing.T) {
	s := NewInMemoryStore()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Save(context.Background(), sampleRecord(time.Now()))
			assert.NoError(t, err)
			_, _ = s.List(context.Background())
		}()
	}
	wg.Wait()
	ids, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 50)
}
