// Package memory provides an in-process Storage.
package memory

import (
	"context"
	"sync"

	"github.com/unkn0wn-root/kvcache/storage"
)

// Store keeps items in a map guarded by a RWMutex.
// The zero value is NOT ready to use; construct with New.
type Store struct {
	mu    sync.RWMutex
	items map[string]string
}

var _ storage.Storage = (*Store)(nil)

func New() *Store { return &Store{items: make(map[string]string)} }

var session = sync.OnceValue(New)

// Session returns the process-wide store. Caches bound to it in the same
// process share snapshots for as long as the process lives.
func Session() *Store { return session() }

func (s *Store) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	v, ok := s.items[key]
	s.mu.RUnlock()
	return v, ok, nil
}

func (s *Store) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.items[key] = value
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Close is a no-op; items stay readable.
func (s *Store) Close(context.Context) error { return nil }
