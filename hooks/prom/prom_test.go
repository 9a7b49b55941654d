package prom

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooksCountEvents(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	h := New(Options{Registerer: reg, Subsystem: "test", Labels: prometheus.Labels{"app": "demo"}})

	h.Hit("user")
	h.Hit("user")
	h.Miss("user")
	h.Reloaded("user", true)
	h.Reloaded("user", false)
	h.ReloadFailed("user", errors.New("db down"))
	h.CodecFailed("cache:user:1", "decode", errors.New("bad json"))
	h.StoreFailed("cache:user:1", "get", errors.New("timeout"))
	h.StoreFailed("cache:user:2", "get", errors.New("timeout"))

	assert.InDelta(t, 2, testutil.ToFloat64(h.lookups.WithLabelValues("user", "hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(h.lookups.WithLabelValues("user", "miss")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(h.reloads.WithLabelValues("user", "loaded")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(h.reloads.WithLabelValues("user", "empty")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(h.reloads.WithLabelValues("user", "error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(h.errors.WithLabelValues("decode", "codec")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(h.errors.WithLabelValues("get", "store")), 0)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.ElementsMatch(t, []string{
		"loadcache_test_lookups_total",
		"loadcache_test_reloads_total",
		"loadcache_test_errors_total",
	}, names)
}

func TestNewPanicsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = New(Options{Registerer: reg})

	assert.Panics(t, func() { _ = New(Options{Registerer: reg}) })
}
