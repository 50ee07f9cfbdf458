package kvcache

import (
	"context"
	"errors"
	"fmt"

	"github.com/unkn0wn-root/kvcache/storage"
)

const (
	opWrite  = "write"
	opRemove = "remove"
)

// hydrate loads the stored snapshot. A missing, corrupt or undecodable
// snapshot is not an error; the cache simply starts empty. Entries go
// through the bounded insert in snapshot order, so an oversized snapshot
// keeps its newest entries.
func (cc *Cache[V]) hydrate(ctx context.Context) error {
	raw, ok, err := cc.storage.GetItem(ctx, cc.storageKey)
	if errors.Is(err, storage.ErrCorrupt) {
		cc.skipUndecodable(err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("kvcache: load snapshot %q: %w", cc.storageKey, err)
	}
	if !ok {
		cc.hooks.HydrationSkipped(cc.ns, "absent")
		return nil
	}
	entries, err := cc.codec.Decode([]byte(raw))
	if err != nil {
		cc.skipUndecodable(err)
		return nil
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	for _, e := range entries {
		cc.store.Set(e.Key, e.Value)
	}
	kept := cc.store.Len()
	if dropped := len(entries) - kept; dropped > 0 {
		cc.log.Info("snapshot larger than cache size; oldest entries dropped",
			Fields{"loaded": len(entries), "kept": kept})
	}
	cc.hooks.Hydrated(cc.ns, len(entries), kept)
	return nil
}

func (cc *Cache[V]) skipUndecodable(err error) {
	cc.log.Debug("ignoring undecodable snapshot", Fields{"key": cc.storageKey, "err": err})
	cc.hooks.HydrationSkipped(cc.ns, "decode_error")
}

// persist rewrites the full snapshot. Callers hold mu.
func (cc *Cache[V]) persist(ctx context.Context, op, key string) error {
	if cc.storage == nil {
		return nil
	}
	b, err := cc.codec.Encode(cc.entries())
	if err != nil {
		return cc.persistFailed(&PersistError{Namespace: cc.ns, Op: op, Key: key, EncodeErr: err})
	}
	if err := cc.storage.SetItem(ctx, cc.storageKey, string(b)); err != nil {
		return cc.persistFailed(&PersistError{Namespace: cc.ns, Op: op, Key: key, StoreErr: err})
	}
	return nil
}

func (cc *Cache[V]) persistFailed(pe *PersistError) error {
	cc.log.Error("snapshot rewrite failed", Fields{"op": pe.Op, "key": pe.Key, "err": pe})
	cc.hooks.PersistFailed(cc.ns, pe.Op, pe)
	return pe
}
