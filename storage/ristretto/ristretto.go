// Package ristretto provides an in-memory Storage backed by dgraph-io/ristretto.
//
// Ristretto may drop writes under contention or memory pressure. SetItem waits
// for the write to be applied and reports ErrRejected when it was dropped, so
// a persisted cache never believes a snapshot was stored when it was not.
package ristretto

import (
	"context"
	"errors"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/kvcache/storage"
)

type Store struct {
	c *rc.Cache
}

var _ storage.Storage = (*Store)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64 // cost of an item is its length in bytes
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) GetItem(_ context.Context, key string) (string, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return "", false, nil
	}
	str, ok := v.(string)
	if !ok {
		// self-heal: drop unexpected entry shape
		s.c.Del(key)
		return "", false, nil
	}
	return str, true, nil
}

func (s *Store) SetItem(_ context.Context, key, value string) error {
	if !s.c.Set(key, value, int64(len(value))) {
		return storage.ErrRejected
	}
	s.c.Wait()
	got, ok := s.c.Get(key)
	if str, _ := got.(string); !ok || str != value {
		return storage.ErrRejected
	}
	return nil
}

func (s *Store) Close(context.Context) error {
	s.c.Wait()
	s.c.Close()
	return nil
}

// Metrics exposes ristretto metrics (nil unless Config.Metrics).
func (s *Store) Metrics() *rc.Metrics { return s.c.Metrics }
