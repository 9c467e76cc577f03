package memory

import (
	"sync"

	"Vineyard/internal/cli/repo"
)

// Store — key-value хранилище в памяти процесса.
type Store struct {
	mu     sync.RWMutex
	data   map[string]string
	reads  int
	writes int
}

var _ repo.KeyValueStore = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{data: map[string]string{}}
}

// Read возвращает значение по ключу.
func (s *Store) Read(key string) (string, bool, error) {
	if key == "" {
		return "", false, repo.ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	v, ok := s.data[key]
	return v, ok, nil
}

// Write сохраняет значение по ключу.
func (s *Store) Write(key, value string) error {
	if key == "" {
		return repo.ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	s.data[key] = value
	return nil
}

// Counts returns how many reads and writes the store has served.
func (s *Store) Counts() (reads, writes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reads, s.writes
}
