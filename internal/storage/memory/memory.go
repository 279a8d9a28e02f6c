// Package memory provides an in-process BlobStore used by tests and by
// throwaway sessions.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/cory-johannsen/cogworld/internal/storage"
)

// Store is a map-backed storage.BlobStore. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	// FailPuts, when non-nil, is returned by every Put.
	FailPuts error
}

// New creates an empty Store.
func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Get returns a copy of the blob under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put stores a copy of data under key.
func (s *Store) Put(_ context.Context, key string, data []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPuts != nil {
		return s.FailPuts
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[key] = cp
	return nil
}

// Exists reports whether key holds a blob.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[key]
	return ok, nil
}

// Len returns the number of stored blobs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
