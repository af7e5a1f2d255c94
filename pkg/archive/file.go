package archive

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// FileStore is a file-based archive for CLI usage.
// Each entry is a JSON metadata file next to its artifact.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based archive in baseDir.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("archive dir is required")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) metaPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) dataPath(id string) string {
	return filepath.Join(s.baseDir, id+".bin")
}

// Put stores e and data. The artifact is written before the metadata so a
// listed entry always has its bytes.
func (s *FileStore) Put(ctx context.Context, e *Entry, data []byte) error {
	if err := prepare(e, data); err != nil {
		return err
	}
	meta, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.dataPath(e.ID), data, 0600); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := os.WriteFile(s.metaPath(e.ID), meta, 0600); err != nil {
		os.Remove(s.dataPath(e.ID))
		return fmt.Errorf("write entry: %w", err)
	}
	return nil
}

// Get returns an entry and its bytes.
func (s *FileStore) Get(ctx context.Context, id string) (*Entry, []byte, error) {
	if err := checkID(id); err != nil {
		return nil, nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.readEntry(s.metaPath(id))
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(s.dataPath(id))
	if os.IsNotExist(err) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read artifact: %w", err)
	}
	return e, data, nil
}

func (s *FileStore) readEntry(path string) (*Entry, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read entry: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("parse entry: %w", err)
	}
	return &e, nil
}

// List returns matching entries, newest first. Unreadable metadata files are
// skipped.
func (s *FileStore) List(ctx context.Context, q Query) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read archive dir: %w", err)
	}
	var out []Entry
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		e, err := s.readEntry(filepath.Join(s.baseDir, f.Name()))
		if err != nil || !q.match(e) {
			continue
		}
		out = append(out, *e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(out) > q.limit() {
		out = out[:q.limit()]
	}
	return out, nil
}

// Delete removes an entry and its artifact.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, path := range []string{s.metaPath(id), s.dataPath(id)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// Path returns the archive directory.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
