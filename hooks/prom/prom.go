// Package prom counts cache events with Prometheus counters.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/unkn0wn-root/loadcache"
)

type Options struct {
	Registerer prometheus.Registerer // nil => prometheus.DefaultRegisterer
	Namespace  string                // metric namespace; "" => "loadcache"
	Subsystem  string
	Labels     prometheus.Labels // const labels
}

// Hooks exports:
//
//	<ns>_<sub>_lookups_total{cache,result="hit|miss"}
//	<ns>_<sub>_reloads_total{cache,result="loaded|empty|error"}
//	<ns>_<sub>_errors_total{op,kind="codec|store"}
//
// Store and codec errors are labelled by operation only; storage keys would
// make the label set unbounded.
type Hooks struct {
	lookups *prometheus.CounterVec
	reloads *prometheus.CounterVec
	errors  *prometheus.CounterVec
}

var _ loadcache.Hooks = (*Hooks)(nil)

func New(opts Options) *Hooks {
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	ns := opts.Namespace
	if ns == "" {
		ns = "loadcache"
	}

	return &Hooks{
		lookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name:        prometheus.BuildFQName(ns, opts.Subsystem, "lookups_total"),
			Help:        "Cache lookups by cache name and result.",
			ConstLabels: opts.Labels,
		}, []string{"cache", "result"}),
		reloads: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name:        prometheus.BuildFQName(ns, opts.Subsystem, "reloads_total"),
			Help:        "Reloader invocations by cache name and outcome.",
			ConstLabels: opts.Labels,
		}, []string{"cache", "result"}),
		errors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name:        prometheus.BuildFQName(ns, opts.Subsystem, "errors_total"),
			Help:        "Codec and store failures by operation.",
			ConstLabels: opts.Labels,
		}, []string{"op", "kind"}),
	}
}

func (h *Hooks) Hit(ns string)  { h.lookups.WithLabelValues(ns, "hit").Inc() }
func (h *Hooks) Miss(ns string) { h.lookups.WithLabelValues(ns, "miss").Inc() }

func (h *Hooks) Reloaded(ns string, loaded bool) {
	if loaded {
		h.reloads.WithLabelValues(ns, "loaded").Inc()
		return
	}
	h.reloads.WithLabelValues(ns, "empty").Inc()
}

func (h *Hooks) ReloadFailed(ns string, _ error) { h.reloads.WithLabelValues(ns, "error").Inc() }

func (h *Hooks) CodecFailed(_, op string, _ error) { h.errors.WithLabelValues(op, "codec").Inc() }
func (h *Hooks) StoreFailed(_, op string, _ error) { h.errors.WithLabelValues(op, "store").Inc() }
