package kvcache

import (
	"context"
	"sync"

	c "github.com/unkn0wn-root/kvcache/codec"
	"github.com/unkn0wn-root/kvcache/internal/ordered"
	"github.com/unkn0wn-root/kvcache/keys"
	"github.com/unkn0wn-root/kvcache/storage"
)

// Cache is a size-bounded key/value cache. Keys are derived with
// keys.Generate, so any method taking a key accepts a scalar or a sequence.
// All methods are safe for concurrent use.
type Cache[V any] struct {
	mu    sync.Mutex
	ns    string
	store *ordered.Map[V]
	fill  func() V

	storage      storage.Storage // nil => memory only
	storageKey   string
	codec        c.Codec[V]
	closeStorage bool

	log   Logger
	hooks Hooks
}

// New builds a cache from opts. With a Storage set, it loads any snapshot
// previously stored under the namespace before returning.
func New[V any](ctx context.Context, opts Options[V]) (*Cache[V], error) {
	if opts.Size < 0 {
		return nil, ErrInvalidSize
	}
	cc := &Cache[V]{
		ns:           coalesce(opts.Namespace, DefaultNamespace),
		store:        ordered.New[V](coalesce(opts.Size, DefaultSize)),
		fill:         opts.Fill,
		storage:      opts.Storage,
		closeStorage: opts.CloseStorage,
	}
	cc.storageKey = cc.ns + storageKeySuffix
	cc.codec = opts.Codec
	if cc.codec == nil {
		cc.codec = c.JSON[V]{}
	}
	cc.log = nsLogger{ns: cc.ns, l: coalesce[Logger](opts.Logger, NopLogger{})}
	cc.hooks = opts.Hooks
	if cc.hooks == nil {
		cc.hooks = NopHooks{}
	}

	if cc.storage != nil {
		if err := cc.hydrate(ctx); err != nil {
			return nil, err
		}
	}
	return cc, nil
}

// Namespace returns the namespace the cache was built with (after defaults).
func (cc *Cache[V]) Namespace() string { return cc.ns }

// Persisted reports whether the cache is bound to a Storage.
func (cc *Cache[V]) Persisted() bool { return cc.storage != nil }

// Size returns the number of entries.
func (cc *Cache[V]) Size() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.store.Len()
}

// Has reports whether key is cached. It never fills or mutates.
func (cc *Cache[V]) Has(key any) (bool, error) {
	k, err := keys.Generate(key)
	if err != nil {
		return false, err
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.store.Has(k), nil
}

// Clear drops every entry from memory. The stored snapshot is left as is.
func (cc *Cache[V]) Clear() {
	cc.mu.Lock()
	n := cc.store.Len()
	cc.store.Clear()
	cc.mu.Unlock()
	cc.log.Debug("cache cleared", Fields{"entries": n})
}

// ReadAll returns a copy of every entry. When the cache is empty it returns
// def, or an empty map if def is nil.
func (cc *Cache[V]) ReadAll(def map[string]V) map[string]V {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.store.Len() == 0 {
		if def != nil {
			return def
		}
		return map[string]V{}
	}
	out := make(map[string]V, cc.store.Len())
	for k, v := range cc.store.All() {
		out[k] = v
	}
	return out
}

// Keys returns the cache keys, oldest first.
func (cc *Cache[V]) Keys() []string {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.store.Keys()
}

// Read returns the value cached under key.
//
// On a miss, fill (or Options.Fill when fill is nil) produces the value, which
// is written under key and returned with ok=true. Without any fill Read
// returns the zero value and ok=false. A persist failure during the implicit
// write is returned together with the filled value.
func (cc *Cache[V]) Read(ctx context.Context, key any, fill func() V) (v V, ok bool, err error) {
	k, err := keys.Generate(key)
	if err != nil {
		return v, false, err
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if v, ok := cc.store.Get(k); ok {
		return v, true, nil
	}
	if fill == nil {
		fill = cc.fill
	}
	if fill == nil {
		return v, false, nil
	}
	v = fill()
	cc.write(k, v)
	cc.hooks.Filled(cc.ns, k)
	return v, true, cc.persist(ctx, opWrite, k)
}

// Write stores value under key, evicting the oldest entry when full, then
// rewrites the stored snapshot if the cache is persisted.
func (cc *Cache[V]) Write(ctx context.Context, key any, value V) error {
	k, err := keys.Generate(key)
	if err != nil {
		return err
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.write(k, value)
	return cc.persist(ctx, opWrite, k)
}

// Remove deletes key (absent keys are not an error), then rewrites the stored
// snapshot if the cache is persisted.
func (cc *Cache[V]) Remove(ctx context.Context, key any) error {
	k, err := keys.Generate(key)
	if err != nil {
		return err
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.remove(k)
	return cc.persist(ctx, opRemove, k)
}

// Close releases the Storage when Options.CloseStorage was set.
func (cc *Cache[V]) Close(ctx context.Context) error {
	if cc.storage != nil && cc.closeStorage {
		return cc.storage.Close(ctx)
	}
	return nil
}

// write inserts a normalized key. Callers hold mu.
func (cc *Cache[V]) write(k string, v V) {
	if evicted, ok := cc.store.Set(k, v); ok {
		cc.log.Debug("evicted oldest entry", Fields{"evicted": evicted, "key": k})
		cc.hooks.Evicted(cc.ns, evicted)
	}
}

// remove deletes a normalized key. Callers hold mu.
func (cc *Cache[V]) remove(k string) {
	cc.store.Delete(k)
}

// entries snapshots the store oldest first. Callers hold mu.
func (cc *Cache[V]) entries() []c.Entry[V] {
	out := make([]c.Entry[V], 0, cc.store.Len())
	for k, v := range cc.store.All() {
		out = append(out, c.Entry[V]{Key: k, Value: v})
	}
	return out
}
