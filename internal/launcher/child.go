package launcher

import (
	"errors"
	"io"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// DefaultStopGrace is how long Terminate waits between SIGTERM and SIGKILL
// when the spec does not configure a grace window.
const DefaultStopGrace = 3 * time.Second

// reapTimeout bounds the post-SIGKILL wait for the reaper to observe the exit.
const reapTimeout = 200 * time.Millisecond

// Child is a handle to a spawned sidecar process. Exactly one waiter
// goroutine calls cmd.Wait; Done is closed once the child has been reaped.
type Child struct {
	cmd   *exec.Cmd
	pid   int
	grace time.Duration
	done  chan struct{}

	mu      sync.Mutex
	exitErr error

	outW io.WriteCloser
	errW io.WriteCloser
}

// PID returns the platform-assigned process identifier.
func (c *Child) PID() int { return c.pid }

// Done is closed after the child has exited and been reaped.
func (c *Child) Done() <-chan struct{} { return c.done }

// ExitErr returns the error from cmd.Wait. Only meaningful after Done closes.
func (c *Child) ExitErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exitErr
}

// wait reaps the child and releases the capture writers. It runs once, from
// the goroutine started by Spawn.
func (c *Child) wait() {
	err := c.cmd.Wait()
	c.mu.Lock()
	c.exitErr = err
	c.mu.Unlock()
	c.closeWriters()
	close(c.done)
}

func (c *Child) closeWriters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outW != nil {
		_ = c.outW.Close()
		c.outW = nil
	}
	if c.errW != nil {
		_ = c.errW.Close()
		c.errW = nil
	}
}

// Terminate asks the child's process group to exit with SIGTERM and escalates
// to SIGKILL after the grace window. It returns once the child has been
// reaped or the post-kill timeout elapses.
func (c *Child) Terminate() error {
	grace := c.grace
	if grace <= 0 {
		grace = DefaultStopGrace
	}
	if err := signalGroup(c.pid, syscall.SIGTERM); err != nil {
		if errors.Is(err, syscall.ESRCH) {
			// Already gone; let the reaper finish.
			c.awaitDone(reapTimeout)
			return nil
		}
		return err
	}
	select {
	case <-c.done:
		return nil
	case <-time.After(grace):
	}
	return c.Kill()
}

// Kill sends SIGKILL to the process group.
func (c *Child) Kill() error {
	if err := signalGroup(c.pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return err
	}
	c.awaitDone(reapTimeout)
	return nil
}

func (c *Child) awaitDone(d time.Duration) {
	select {
	case <-c.done:
	case <-time.After(d):
	}
}
