// Package asynchook moves Hooks calls off the cache's critical section.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{EvictEvery: 100})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := kvcache.New[User](ctx, kvcache.Options[User]{
//	    Namespace: "app:user",
//	    Hooks:     hooks, // or `raw` if you don't want async
//	})
//
// Events are dropped when the queue is full.
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/kvcache"
)

type Hooks struct {
	inner   kvcache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	dropped atomic.Uint64
}

var _ kvcache.Hooks = (*Hooks)(nil)

func New(inner kvcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Hooks must not be
// called after Close.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

// Dropped returns how many events were discarded because the queue was full.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) Evicted(ns, k string) { h.try(func() { h.inner.Evicted(ns, k) }) }
func (h *Hooks) Filled(ns, k string)  { h.try(func() { h.inner.Filled(ns, k) }) }
func (h *Hooks) Hydrated(ns string, loaded, kept int) {
	h.try(func() { h.inner.Hydrated(ns, loaded, kept) })
}
func (h *Hooks) HydrationSkipped(ns, reason string) {
	h.try(func() { h.inner.HydrationSkipped(ns, reason) })
}
func (h *Hooks) PersistFailed(ns, op string, err error) {
	h.try(func() { h.inner.PersistFailed(ns, op, err) })
}
