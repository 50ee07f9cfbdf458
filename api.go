package kvcache

import (
	c "github.com/unkn0wn-root/kvcache/codec"
	"github.com/unkn0wn-root/kvcache/storage"
)

const (
	// DefaultSize is the capacity used when Options.Size is 0.
	DefaultSize = 30
	// DefaultNamespace is used when Options.Namespace is empty.
	DefaultNamespace = "cacheJs"

	storageKeySuffix = "_cache"
)

// Options configure a Cache. The zero value is a valid in-memory cache.
type Options[V any] struct {
	Size      int      // max entries; 0 => 30, negative => ErrInvalidSize
	Fill      func() V // default miss-fill; per-call fill in Read wins
	Namespace string   // snapshot lives under "<Namespace>_cache"; "" => "cacheJs"

	// Persistence. Nil Storage keeps the cache in memory only.
	Storage      storage.Storage
	Codec        c.Codec[V] // nil => codec.JSON[V]
	CloseStorage bool       // Close also closes Storage

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
