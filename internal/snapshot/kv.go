// Package snapshot persists the hierarchy and view state to a local
// string-based key-value store. The store mirrors browser localStorage:
// one writer, last write wins, full-value overwrites.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// KV is the minimal key-value contract the codec persists through.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// FileKV stores each key as one file inside a directory.
type FileKV struct {
	dir string
	mu  sync.Mutex
}

// NewFileKV creates a file-backed store rooted at dir, creating it if needed.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

// Get implements KV.
func (s *FileKV) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return string(data), true, nil
}

// Set implements KV. The write goes through a temp file and rename so a
// crash mid-write never leaves a truncated value behind.
func (s *FileKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to commit key %q: %w", key, err)
	}
	return nil
}

// Delete implements KV.
func (s *FileKV) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// path maps a key to a file name. Slashes in keys are flattened so a key
// never escapes the store directory.
func (s *FileKV) path(key string) string {
	name := strings.ReplaceAll(key, "/", "__") + ".json"
	return filepath.Join(s.dir, name)
}

// MemKV is an in-memory store for tests.
type MemKV struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemKV creates an empty in-memory store.
func NewMemKV() *MemKV {
	return &MemKV{values: make(map[string]string)}
}

// Get implements KV.
func (s *MemKV) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements KV.
func (s *MemKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete implements KV.
func (s *MemKV) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
