// Package metrics exports container resolution metrics to prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/go-inject/framework/container"
)

// Token resolves the application *Collector.
var Token = container.NewToken[*Collector]("metrics")

// Collector counts resolutions per token and records construction times. It
// implements container.Observer; attach it with container.WithObserver or
// SetObserver.
type Collector struct {
	registry *prometheus.Registry

	resolutions   *prometheus.CounterVec
	unresolved    *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
}

// New creates a Collector with its own registry so several collectors can
// coexist, as they do in tests.
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		resolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inject_resolutions_total",
				Help: "Total number of resolved bindings",
			},
			[]string{"token", "kind", "scope", "cached"},
		),
		unresolved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inject_unresolved_total",
				Help: "Total number of lookups that found no binding",
			},
			[]string{"token"},
		),
		buildDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inject_build_duration_seconds",
				Help:    "Time spent constructing values, cache hits excluded",
				Buckets: []float64{.00001, .0001, .001, .01, .1, 1},
			},
			[]string{"token", "scope"},
		),
	}
}

// Resolved implements container.Observer.
func (c *Collector) Resolved(ev container.Event) {
	cached := "false"
	if ev.Cached {
		cached = "true"
	}
	c.resolutions.WithLabelValues(ev.Token, ev.Kind, ev.Scope, cached).Inc()
	if !ev.Cached && (ev.Kind == "instance" || ev.Kind == "call") {
		c.buildDuration.WithLabelValues(ev.Token, ev.Scope).Observe(ev.Duration.Seconds())
	}
}

// Unresolved implements container.Observer.
func (c *Collector) Unresolved(token string) {
	c.unresolved.WithLabelValues(token).Inc()
}

// Registry exposes the underlying registry, e.g. to add process collectors.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler returns the Prometheus metrics handler
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
