// Package prefs persists user preferences (favorites, theme, work windows) in
// a key-value store addressed by opaque string keys.
package prefs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"gopkg.in/yaml.v3"
)

// Store is a string key-value store. Values are opaque to the store.
type Store interface {
	Load(key string) (value string, found bool, err error)
	Save(key, value string) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	values map[string]string
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Load implements Store.
func (m *MemoryStore) Load(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Save implements Store.
func (m *MemoryStore) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// FileStore keeps all keys in one YAML file. The file is read once when the
// store is opened and rewritten atomically on every Save.
type FileStore struct {
	logger *slog.Logger
	values map[string]string
	path   string
	mu     sync.Mutex
}

// DefaultPath returns the preference file under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "tzoverlap", "prefs.yaml"), nil
}

// OpenFileStore opens the store at path. A missing file is an empty store.
func OpenFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &FileStore{path: path, logger: logger, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("no preference file yet", "path", path)
			return s, nil
		}
		return nil, fmt.Errorf("reading preferences: %w", err)
	}

	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("parsing preferences %s: %w", path, err)
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	logger.Debug("preferences loaded", "path", path, "keys", len(s.values))
	return s, nil
}

// Load implements Store.
func (s *FileStore) Load(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Save implements Store. The write is retried briefly in case another process
// is replacing the file at the same moment.
func (s *FileStore) Save(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.values[key]
	s.values[key] = value

	err := retry.Do(
		s.writeFile,
		retry.Attempts(3),
		retry.Delay(50*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Debug("retrying preference write", "attempt", n+1, "path", s.path, "error", err)
		}),
	)
	if err != nil {
		if existed {
			s.values[key] = previous
		} else {
			delete(s.values, key)
		}
		return fmt.Errorf("saving preference %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) writeFile() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("creating preference dir: %w", err)
	}

	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return fmt.Errorf("writing temp preference file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil && !os.IsNotExist(removeErr) {
			s.logger.Debug("failed to remove temp file", "error", removeErr)
		}
		return fmt.Errorf("replacing preference file: %w", err)
	}
	return nil
}
