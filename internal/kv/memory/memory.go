// Package memory is a process-local kv.Store, used for tests and for
// throw-away sessions.
package memory

import (
	"context"
	"maps"
	"sync"

	"spendtrack/internal/kv"
)

type Store struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

func New() *Store {
	return &Store{values: make(map[string]string)}
}

// NewSeeded returns a store pre-filled with seed. The map is copied.
func NewSeeded(seed map[string]string) *Store {
	s := New()
	maps.Copy(s.values, seed)
	return s
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	if err := kv.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.writes++
	return nil
}

// Writes returns how many Set calls succeeded.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
