package kvcache

import (
	"github.com/unkn0wn-root/kvcache/storage/file"
	"github.com/unkn0wn-root/kvcache/storage/memory"
)

// Session binds opts to the process-wide session store. Caches with the same
// namespace share a snapshot for the life of the process.
func Session[V any](opts Options[V]) Options[V] {
	opts.Storage = memory.Session()
	opts.CloseStorage = false
	return opts
}

// Durable binds opts to an on-disk store under dir, so snapshots survive
// restarts. An empty dir selects the per-user cache directory.
func Durable[V any](opts Options[V], dir string) (Options[V], error) {
	st, err := file.Open(dir)
	if err != nil {
		return opts, err
	}
	opts.Storage = st
	opts.CloseStorage = true
	return opts, nil
}
