package supervisor

import (
	"context"
	"time"
)

// DefaultAutoStartDelay is the settle window before the launch-time start,
// giving the rest of the host application's initialization room to finish.
const DefaultAutoStartDelay = 500 * time.Millisecond

// AutoStart schedules a best-effort Start after delay on a detached
// goroutine. Failures are logged and never propagated, so a missing sidecar
// binary cannot break host startup. Cancelling ctx drops a pending start; a
// start already in flight is not interrupted.
func (s *Supervisor) AutoStart(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		delay = DefaultAutoStartDelay
	}
	go func() {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		msg, err := s.Start()
		if err != nil {
			s.logger.Warn("sidecar auto-start failed", "name", s.name, "error", err)
			return
		}
		s.logger.Info("sidecar auto-start", "name", s.name, "result", msg)
	}()
}
