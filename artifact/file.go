package artifact

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
)

const (
	filePrefix = "travel_guide_"
	fileSuffix = ".json"
	timeLayout = "20060102_150405"
)

// writeGuide is replaced in tests to simulate a failing disk.
var writeGuide = func(f *os.File, data []byte) error {
	_, err := f.Write(data)
	return err
}

// FileStore writes each record as an indented JSON file inside Dir. File
// names are derived from the record timestamp; a numeric suffix is added
// when two guides share the same second.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the storage directory.
func (s *FileStore) Dir() string { return s.dir }

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, rec *Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode guide: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create history dir: %w", err)
	}

	base := filePrefix + rec.Timestamp.Format(timeLayout)
	for n := 1; ; n++ {
		id := base
		if n > 1 {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		f, err := os.OpenFile(filepath.Join(s.dir, id+fileSuffix), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create guide file: %w", err)
		}
		if err := writeGuide(f, data); err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("write guide file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close guide file: %w", err)
		}
		return id, nil
	}
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(id, filePrefix) || strings.ContainsAny(id, `/\`) {
		return nil, ErrInvalidID
	}

	data, err := os.ReadFile(filepath.Join(s.dir, id+fileSuffix))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read guide file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode guide file %s: %w", id, err)
	}
	return &rec, nil
}

// List implements Store.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list history dir: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, fileSuffix))
	}
	slices.SortFunc(ids, compareIDs)
	return ids, nil
}

// compareIDs orders ids by timestamp, then by numeric collision suffix, so
// that "_10" follows "_2".
func compareIDs(a, b string) int {
	baseA, nA := splitID(a)
	baseB, nB := splitID(b)
	if c := strings.Compare(baseA, baseB); c != 0 {
		return c
	}
	return cmp.Compare(nA, nB)
}

func splitID(id string) (string, int) {
	baseLen := len(filePrefix) + len(timeLayout)
	if len(id) > baseLen+1 && id[baseLen] == '_' {
		if n, err := strconv.Atoi(id[baseLen+1:]); err == nil {
			return id[:baseLen], n
		}
	}
	return id, 1
}
