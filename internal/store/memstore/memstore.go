// Package memstore is an in-memory key/value backend. It is used for the
// "memory" storage backend and as the persistence fake in tests.
package memstore

import (
	"context"
	"sync"
)

// Store keeps values in a map. GetErr and SetErr, when set, are returned by
// every subsequent Get or Set call.
type Store struct {
	mu     sync.Mutex
	values map[string]string
	writes []string

	GetErr error
	SetErr error
}

func New() *Store {
	return &Store{values: map[string]string{}}
}

// Seed stores value under key without counting it as a write.
func (s *Store) Seed(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, value)
	if s.SetErr != nil {
		return s.SetErr
	}
	s.values[key] = value
	return nil
}

// Writes returns every value passed to Set, failed ones included, in call
// order.
func (s *Store) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.writes))
	copy(out, s.writes)
	return out
}

// SetFailures swaps the injected errors under the store lock.
func (s *Store) SetFailures(getErr, setErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GetErr = getErr
	s.SetErr = setErr
}
