// Package kvcache implements a small bounded key/value cache with optional
// snapshot persistence.
//
// Components:
//   - keys.Generate: derives the cache key from a scalar or a sequence of
//     scalars ([]any{"user", 42} => "user_42").
//   - ordered.Map: insertion-ordered store; when full, the oldest entry is
//     evicted before a write.
//   - Storage: flat string key/value store (memory, file, SQLite, Redis,
//     BigCache, Ristretto). When set, the cache hydrates from it in New and
//     rewrites the full snapshot after every Write and Remove.
//   - Codec[V]: snapshot format. JSON object by default.
//
// Miss-fill:
//
//	v, ok, err := c.Read(ctx, []any{"user", id}, func() User { return loadUser(id) })
//	// on a miss the callback result is written (and persisted) before returning
//
// Clear only empties memory; the stored snapshot is rewritten by the next
// Write or Remove.
package kvcache
