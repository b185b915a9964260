// Package jsonstore provides a JSON file-based implementation of domain.StateStore.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/runoshun/kanban/internal/domain"
)

// ErrNotJSON is returned when a value to store is not a JSON document.
var ErrNotJSON = errors.New("value is not valid JSON")

// storeData represents the JSON file structure.
type storeData struct {
	Entries map[string]json.RawMessage `json:"entries"`
}

// Store implements domain.StateStore using a single JSON file guarded by an
// flock-ed sidecar lock file, so several processes can share one board.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key, or nil if missing.
func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.withLock(func(data *storeData) error {
		if v, ok := data.Entries[key]; ok {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	return value, err
}

// Set stores a JSON value under key.
func (s *Store) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("set %q: %w", key, ErrNotJSON)
	}
	return s.withLockWrite(func(data *storeData) error {
		data.Entries[key] = append(json.RawMessage(nil), value...)
		return nil
	})
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	return s.withLockWrite(func(data *storeData) error {
		delete(data.Entries, key)
		return nil
	})
}

// Keys returns every stored key.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.withLock(func(data *storeData) error {
		for k := range data.Entries {
			keys = append(keys, k)
		}
		return nil
	})
	return keys, err
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// read loads the file. A missing file reads as an empty store.
func (s *Store) read() (*storeData, error) {
	data := &storeData{}
	content, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read store file: %w", err)
	default:
		if err := json.Unmarshal(content, data); err != nil {
			return nil, fmt.Errorf("parse store file: %w", err)
		}
	}

	if data.Entries == nil {
		data.Entries = make(map[string]json.RawMessage)
	}
	return data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements StateStore.
var _ domain.StateStore = (*Store)(nil)
