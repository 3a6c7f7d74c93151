package cursor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileStore is a file-based cursor store for CLI applications.
// Cursors are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based cursor store.
// If baseDir is empty, defaults to ~/.config/ecoscout/cursors/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "ecoscout", "cursors")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create cursor dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) cursorPath(key string) string {
	return filepath.Join(s.baseDir, filepath.Base(key)+".json")
}

func (s *FileStore) Get(ctx context.Context, key string) (*Cursor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return readCursor(s.cursorPath(key))
}

func (s *FileStore) Set(ctx context.Context, c *Cursor) error {
	if c == nil || c.Key == "" {
		return fmt.Errorf("cursor key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cursor: %w", err)
	}

	path := s.cursorPath(c.Key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write cursor file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write cursor file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.cursorPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cursor file: %w", err)
	}
	return nil
}

// List returns every stored cursor, most recently updated first.
// Unreadable files are skipped.
func (s *FileStore) List(ctx context.Context) ([]*Cursor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read cursor dir: %w", err)
	}

	var out []*Cursor
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		c, err := readCursor(filepath.Join(s.baseDir, entry.Name()))
		if err != nil || c == nil {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for cursor files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func readCursor(path string) (*Cursor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cursor file: %w", err)
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse cursor: %w", err)
	}
	return &c, nil
}

var _ Store = (*FileStore)(nil)
