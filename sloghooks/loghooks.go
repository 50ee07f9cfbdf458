// Package sloghooks reports kvcache Hooks events through log/slog.
package sloghooks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/kvcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	EvictEvery uint64
	FillEvery  uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	evictCtr atomic.Uint64
	fillCtr  atomic.Uint64
}

var _ kvcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Evicted(ns, key string) {
	if h.l == nil || !sample(h.opts.EvictEvery, &h.evictCtr) {
		return
	}
	h.l.Debug("kvcache.evicted",
		"ns", ns,
		"key", h.redact(key))
}

func (h *Hooks) Filled(ns, key string) {
	if h.l == nil || !sample(h.opts.FillEvery, &h.fillCtr) {
		return
	}
	h.l.Debug("kvcache.filled",
		"ns", ns,
		"key", h.redact(key))
}

func (h *Hooks) Hydrated(ns string, loaded, kept int) {
	if h.l == nil {
		return
	}
	h.l.Info("kvcache.hydrated",
		"ns", ns,
		"loaded", loaded,
		"kept", kept)
}

func (h *Hooks) HydrationSkipped(ns, reason string) {
	if h.l == nil {
		return
	}
	level := slog.LevelDebug
	if reason != "absent" {
		level = slog.LevelWarn
	}
	h.l.Log(context.Background(), level, "kvcache.hydration_skipped",
		"ns", ns,
		"reason", reason)
}

func (h *Hooks) PersistFailed(ns, op string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("kvcache.persist_failed",
		"ns", ns,
		"op", op,
		"err", err)
}
