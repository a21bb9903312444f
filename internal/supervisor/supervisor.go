package supervisor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/loykin/sidekick/internal/history"
	"github.com/loykin/sidekick/internal/metrics"
)

// Result messages for the idempotent lifecycle operations.
const (
	MsgStarted        = "started"
	MsgAlreadyRunning = "already running"
	MsgStopped        = "stopped"
	MsgNotRunning     = "not running"
)

// Child is the narrow contract the supervisor needs from a spawned process:
// identify it, observe its exit, terminate it.
type Child interface {
	PID() int
	Done() <-chan struct{}
	ExitErr() error
	Terminate() error
}

// Launcher resolves and spawns the configured sidecar executable.
type Launcher interface {
	Spawn() (Child, error)
}

// Status is the supervisor's view of the tracked child. It reflects
// bookkeeping, not a live OS probe; the reaper converges it after an
// unexpected exit.
type Status struct {
	Alive bool `json:"alive"`
	PID   *int `json:"pid"`
}

// Supervisor serializes lifecycle operations on a single sidecar slot.
// At most one child is tracked at a time; the mutex is held for every read
// or mutation of the slot, including across the spawn and terminate calls,
// so concurrent starts observe "already running" instead of racing.
type Supervisor struct {
	name     string
	launcher Launcher
	logger   *slog.Logger
	sink     history.Sink

	mu    sync.Mutex
	child Child
}

// Options carries the optional collaborators of a Supervisor.
type Options struct {
	Logger  *slog.Logger // defaults to slog.Default()
	History history.Sink // nil disables event recording
}

func New(name string, l Launcher, opts Options) *Supervisor {
	lg := opts.Logger
	if lg == nil {
		lg = slog.Default()
	}
	return &Supervisor{name: name, launcher: l, logger: lg, sink: opts.History}
}

func (s *Supervisor) Name() string { return s.name }

// Start spawns the sidecar unless one is already tracked. Starting an
// already-running sidecar is a successful no-op. A spawn failure leaves the
// slot empty and is returned to the caller; in development the sidecar is
// often launched by hand, so this must not be fatal.
func (s *Supervisor) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.child != nil {
		return MsgAlreadyRunning, nil
	}
	child, err := s.launcher.Spawn()
	if err != nil {
		metrics.IncSpawnFailure(s.name)
		s.record(history.EventSpawnFailed, 0, err)
		return "", &SpawnError{Err: err}
	}
	s.child = child
	metrics.IncStart(s.name)
	metrics.SetUp(s.name, true)
	s.logger.Info("sidecar started", "name", s.name, "pid", child.PID())
	s.record(history.EventStarted, child.PID(), nil)
	go s.reap(child)
	return MsgStarted, nil
}

// Stop terminates the tracked sidecar. Stopping when nothing is tracked is a
// successful no-op. The handle is taken out of the slot before the kill; if
// the kill fails the slot stays cleared and the possible orphan is surfaced
// to the caller rather than retried.
func (s *Supervisor) Stop() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.child == nil {
		return MsgNotRunning, nil
	}
	child := s.child
	s.child = nil
	pid := child.PID()
	if err := child.Terminate(); err != nil {
		metrics.IncKillFailure(s.name)
		metrics.SetUp(s.name, false)
		s.logger.Error("sidecar terminate failed", "name", s.name, "pid", pid, "error", err)
		s.record(history.EventStopped, pid, err)
		return "", &KillError{Err: err}
	}
	metrics.IncStop(s.name)
	metrics.SetUp(s.name, false)
	s.logger.Info("sidecar stopped", "name", s.name, "pid", pid)
	s.record(history.EventStopped, pid, nil)
	return MsgStopped, nil
}

// Status reports the tracked child, if any. Read-only under the lock.
func (s *Supervisor) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.child == nil {
		return Status{Alive: false}
	}
	pid := s.child.PID()
	return Status{Alive: true, PID: &pid}
}

// reap waits for the child to exit and reconciles the slot when the exit was
// not requested through Stop, so a crashed sidecar does not stay reported as
// alive until the next failed stop.
func (s *Supervisor) reap(child Child) {
	<-child.Done()
	s.mu.Lock()
	owned := s.child == child
	if owned {
		s.child = nil
	}
	s.mu.Unlock()
	if !owned {
		// Stop already took the handle; it records the outcome.
		return
	}
	err := child.ExitErr()
	metrics.IncUnexpectedExit(s.name)
	metrics.SetUp(s.name, false)
	s.logger.Warn("sidecar exited", "name", s.name, "pid", child.PID(), "error", err)
	s.record(history.EventExited, child.PID(), err)
}

// record dispatches a history event off the lock path. Sink errors only feed
// the log, never the caller.
func (s *Supervisor) record(t history.EventType, pid int, cause error) {
	if s.sink == nil {
		return
	}
	e := history.Event{Type: t, OccurredAt: time.Now(), Name: s.name, PID: pid}
	if cause != nil {
		e.Detail = cause.Error()
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.sink.Send(ctx, e); err != nil {
			s.logger.Warn("history sink send failed", "event", string(t), "error", err)
		}
	}()
}
