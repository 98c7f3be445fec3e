package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store defines the persistence operations supported by the device-local
// key-value store. Values are JSON documents addressed by logical key.
type Store interface {
	Get(key string, out any) (bool, error)
	GetRaw(key string) (json.RawMessage, bool)
	Set(key string, value any) error
	Remove(key string) error
}

// FileStore implements Store on top of a single JSON file. Every Set/Remove
// rewrites the file through a temp-file rename so a crash mid-write leaves
// the previous contents intact.
type FileStore struct {
	path   string
	mu     sync.Mutex
	data   map[string]json.RawMessage
	logger *zap.Logger
}

// New opens (or creates) the store backed by the given file. A missing or
// malformed file is not an error: the store starts empty and the application
// proceeds with in-memory state.
func New(path string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		return nil, fmt.Errorf("data file path must not be empty")
	}

	s := &FileStore{
		path:   path,
		data:   make(map[string]json.RawMessage),
		logger: logger,
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("data file not found, starting empty", zap.String("path", path))
	case err != nil:
		return nil, fmt.Errorf("read data file %s: %w", path, err)
	default:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			logger.Warn("data file is malformed, starting empty", zap.String("path", path), zap.Error(err))
			s.data = make(map[string]json.RawMessage)
		}
	}

	return s, nil
}

// Get unmarshals the value stored under key into out. The boolean reports
// whether the key was present.
func (s *FileStore) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("decode value for key %s: %w", key, err)
	}
	return true, nil
}

// GetRaw returns the stored JSON document without decoding it. Callers use
// this when the shape must be sniffed before unmarshaling (legacy migration).
func (s *FileStore) GetRaw(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.data[key]
	if !ok {
		return nil, false
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out, true
}

// Set stores the value under key and flushes the file.
func (s *FileStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for key %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = raw
	return s.flush()
}

// Remove deletes the key and flushes the file. Removing an absent key is a
// no-op.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flush()
}

// Snapshot copies the current store contents into dir under a timestamped
// file name and returns the written path.
func (s *FileStore) Snapshot(dir string) (string, error) {
	s.mu.Lock()
	raw, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}

	name := fmt.Sprintf("stationary-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return path, nil
}

// flush serializes the full key space to the backing file. Callers must hold
// the mutex.
func (s *FileStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write temp data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
