// Package storage defines the flat key/value store a persisted cache keeps
// its snapshot in.
//
// The contract mirrors browser Web Storage: string keys, string values,
// GetItem and SetItem. A store must be value-transparent: GetItem returns
// exactly the string last passed to SetItem for that key. Snapshots may be
// binary (msgpack, CBOR, protobuf), so stores must not assume UTF-8.
package storage

import (
	"context"
	"errors"
)

// ErrRejected is returned by SetItem when a store dropped the write under
// memory pressure instead of storing it.
var ErrRejected = errors.New("storage: write rejected")

// ErrCorrupt is wrapped by GetItem errors when an item exists but its stored
// bytes cannot be read back.
var ErrCorrupt = errors.New("storage: corrupt item")

// Storage is a minimal flat key/value store.
type Storage interface {
	// GetItem returns (value, true, nil) on hit and ("", false, nil) on miss.
	// If an IO/remote error happens, return ("", false, err).
	GetItem(ctx context.Context, key string) (string, bool, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
