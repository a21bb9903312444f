package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	sidecarStarts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sidekick",
			Subsystem: "sidecar",
			Name:      "starts_total",
			Help:      "Number of successful sidecar spawns.",
		}, []string{"name"},
	)
	sidecarStops = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sidekick",
			Subsystem: "sidecar",
			Name:      "stops_total",
			Help:      "Number of explicit sidecar stops.",
		}, []string{"name"},
	)
	sidecarSpawnFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sidekick",
			Subsystem: "sidecar",
			Name:      "spawn_failures_total",
			Help:      "Number of failed spawn attempts.",
		}, []string{"name"},
	)
	sidecarKillFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sidekick",
			Subsystem: "sidecar",
			Name:      "kill_failures_total",
			Help:      "Number of failed terminate requests (possible orphan).",
		}, []string{"name"},
	)
	sidecarUnexpectedExits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sidekick",
			Subsystem: "sidecar",
			Name:      "unexpected_exits_total",
			Help:      "Number of times the sidecar exited without a stop request.",
		}, []string{"name"},
	)
	sidecarUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "sidekick",
			Subsystem: "sidecar",
			Name:      "up",
			Help:      "1 while a sidecar process is tracked as alive.",
		}, []string{"name"},
	)
)

// Register registers all metrics with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{sidecarStarts, sidecarStops, sidecarSpawnFailures, sidecarKillFailures, sidecarUnexpectedExits, sidecarUp}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			// If already registered, ignore (allows double Register with default registry)
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler returns an http.Handler serving Prometheus metrics for the DefaultGatherer.
func Handler() http.Handler { return promhttp.Handler() }

// Lightweight helpers used by internal packages. They no-op until Register
// has been called.

func IncStart(name string) {
	if regOK.Load() {
		sidecarStarts.WithLabelValues(name).Inc()
	}
}
func IncStop(name string) {
	if regOK.Load() {
		sidecarStops.WithLabelValues(name).Inc()
	}
}
func IncSpawnFailure(name string) {
	if regOK.Load() {
		sidecarSpawnFailures.WithLabelValues(name).Inc()
	}
}
func IncKillFailure(name string) {
	if regOK.Load() {
		sidecarKillFailures.WithLabelValues(name).Inc()
	}
}
func IncUnexpectedExit(name string) {
	if regOK.Load() {
		sidecarUnexpectedExits.WithLabelValues(name).Inc()
	}
}
func SetUp(name string, up bool) {
	if regOK.Load() {
		v := float64(0)
		if up {
			v = 1
		}
		sidecarUp.WithLabelValues(name).Set(v)
	}
}
