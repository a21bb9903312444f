package history

import (
	"context"
	"time"
)

// EventType defines the kind of sidecar lifecycle event.
type EventType string

const (
	EventStarted     EventType = "started"
	EventStopped     EventType = "stopped"
	EventExited      EventType = "exited" // child left on its own
	EventSpawnFailed EventType = "spawn_failed"
)

// Event represents a lifecycle transition to be exported to external systems.
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Name       string    `json:"name"`
	PID        int       `json:"pid"`
	Detail     string    `json:"detail,omitempty"` // error text when the transition carried one
}

// Sink is a destination for history events (audit/statistics systems).
// Implementations must be safe for concurrent use.
type Sink interface {
	Send(ctx context.Context, e Event) error
}

// NopSink discards events. Used when history is disabled.
type NopSink struct{}

func (NopSink) Send(context.Context, Event) error { return nil }
