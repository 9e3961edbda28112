package statestore

import (
	"errors"
	"sync"
)

var _ Store = (*InMemory)(nil)

// InMemory is a thread-safe in-memory implementation of Store.
type InMemory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewInMemory creates a new in-memory state store.
func NewInMemory() *InMemory {
	return &InMemory{
		values: make(map[string]string),
	}
}

// Put stores or overwrites the value under key.
func (s *InMemory) Put(key, value string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Get retrieves the value under key.
func (s *InMemory) Get(key string) (string, error) {
	if key == "" {
		return "", errors.New("key cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.values[key]
	if !exists {
		return "", ErrNotFound
	}
	return value, nil
}

// Delete removes the value under key.
func (s *InMemory) Delete(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
