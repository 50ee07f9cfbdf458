// Package codec serializes cache snapshots.
//
// A snapshot is the full, insertion-ordered list of cache entries. Every
// codec in this package preserves that order across Encode/Decode so that
// eviction order survives a reload.
package codec

// Entry is one cache entry in a snapshot.
type Entry[V any] struct {
	Key   string
	Value V
}

// Codec encodes/decodes snapshots of V values to []byte for storage.
type Codec[V any] interface {
	Encode([]Entry[V]) ([]byte, error)
	Decode([]byte) ([]Entry[V], error)
}
