package sidekick

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cfg "github.com/loykin/sidekick/internal/config"
	"github.com/loykin/sidekick/internal/history"
	hfactory "github.com/loykin/sidekick/internal/history/factory"
	"github.com/loykin/sidekick/internal/launcher"
	"github.com/loykin/sidekick/internal/metrics"
	iapi "github.com/loykin/sidekick/internal/server"
	sup "github.com/loykin/sidekick/internal/supervisor"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Spec = launcher.Spec

type Status = sup.Status

type Options = sup.Options

type HistorySink = history.Sink

// Result messages returned by Start/Stop.
const (
	MsgStarted        = sup.MsgStarted
	MsgAlreadyRunning = sup.MsgAlreadyRunning
	MsgStopped        = sup.MsgStopped
	MsgNotRunning     = sup.MsgNotRunning
)

// Supervisor is a thin facade over internal/supervisor.Supervisor.
// It provides a stable public API for embedding: construct it once at
// application startup and hand it to every handler that needs it.
type Supervisor struct{ inner *sup.Supervisor }

// New builds a supervisor for the sidecar described by spec.
func New(spec Spec, opts Options) *Supervisor {
	l := launcher.New(spec)
	return &Supervisor{inner: sup.New(spec.Name, spawnAdapter{l}, opts)}
}

func (s *Supervisor) Start() (string, error) { return s.inner.Start() }
func (s *Supervisor) Stop() (string, error)  { return s.inner.Stop() }
func (s *Supervisor) Status() Status         { return s.inner.Status() }

// AutoStart schedules a best-effort start after delay; see the supervisor
// package for semantics.
func (s *Supervisor) AutoStart(ctx context.Context, delay time.Duration) {
	s.inner.AutoStart(ctx, delay)
}

// spawnAdapter narrows *launcher.Launcher to the supervisor's Launcher
// contract without leaking the concrete child type.
type spawnAdapter struct{ l *launcher.Launcher }

func (a spawnAdapter) Spawn() (sup.Child, error) {
	c, err := a.l.Spawn()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NewHistorySink builds a lifecycle history sink from a DSN
// (sqlite://, postgres://, clickhouse://).
func NewHistorySink(dsn string) (HistorySink, error) {
	return hfactory.NewSinkFromDSN(dsn)
}

// LoadConfig parses a TOML daemon configuration file.
func LoadConfig(path string) (*cfg.Config, error) {
	return cfg.LoadConfig(path)
}

// NewHTTPServer starts an HTTP server exposing the control API for the given
// supervisor.
func NewHTTPServer(addr, basePath string, s *Supervisor) (*http.Server, error) {
	return iapi.NewServer(addr, basePath, s.inner)
}

// NewRouterHandler returns the control API as an http.Handler for mounting
// inside an existing server.
func NewRouterHandler(basePath string, s *Supervisor) http.Handler {
	return iapi.NewRouter(s.inner, basePath).Handler()
}

// Metrics helpers (public facade)

func RegisterMetrics(r prometheus.Registerer) error { return metrics.Register(r) }
func RegisterMetricsDefault() error                 { return metrics.Register(prometheus.DefaultRegisterer) }

// ServeMetrics starts an HTTP server on addr exposing /metrics using the
// default registry. It returns any immediate listen error; otherwise it runs
// the server in the caller goroutine.
func ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv.ListenAndServe()
}
