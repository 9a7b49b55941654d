package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/loadcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	MissEvery        uint64
	CodecFailedEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

// Hooks writes cache events to slog. Hits are never logged.
type Hooks struct {
	l    *slog.Logger
	opts Options

	missCtr  atomic.Uint64
	codecCtr atomic.Uint64
}

var _ loadcache.Hooks = (*Hooks)(nil)

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

func (h *Hooks) Hit(string) {}

func (h *Hooks) Miss(ns string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("loadcache.miss", "ns", ns)
}

func (h *Hooks) Reloaded(ns string, loaded bool) {
	if h.l == nil {
		return
	}
	h.l.Debug("loadcache.reloaded",
		"ns", ns,
		"loaded", loaded)
}

func (h *Hooks) ReloadFailed(ns string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("loadcache.reload_failed",
		"ns", ns,
		"err", err)
}

func (h *Hooks) CodecFailed(storageKey, op string, err error) {
	if h.l == nil || !sample(h.opts.CodecFailedEvery, &h.codecCtr) {
		return
	}
	h.l.Warn("loadcache.codec_failed",
		"key", h.redact(storageKey),
		"op", op,
		"err", err)
}

func (h *Hooks) StoreFailed(storageKey, op string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("loadcache.store_failed",
		"key", h.redact(storageKey),
		"op", op,
		"err", err)
}
