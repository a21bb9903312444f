package launcher

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/loykin/sidekick/internal/logger"
)

// Spec describes the sidecar executable to launch.
type Spec struct {
	Name      string        `json:"name" mapstructure:"name"`           // logical name, used for log files and labels
	Command   string        `json:"command" mapstructure:"command"`     // executable name or command line
	WorkDir   string        `json:"work_dir" mapstructure:"work_dir"`   // optional working dir
	Env       []string      `json:"env" mapstructure:"env"`             // optional extra env (KEY=VALUE)
	StopGrace time.Duration `json:"stop_grace" mapstructure:"stop_grace"` // SIGTERM grace before SIGKILL
	Log       logger.Config `json:"log" mapstructure:"log"`             // captured stdout/stderr rotation
}

// Launcher resolves and spawns the configured sidecar binary.
// It is the only component that touches os/exec; the supervisor depends on
// the narrow Child contract it returns.
type Launcher struct {
	spec Spec
}

func New(spec Spec) *Launcher { return &Launcher{spec: spec} }

func (l *Launcher) Spec() Spec { return l.spec }

// Spawn starts the sidecar and returns a handle for it. The child is placed
// in its own process group so termination reaches any grandchildren. A waiter
// goroutine reaps the child and closes Done when it exits.
func (l *Launcher) Spawn() (*Child, error) {
	cmd, err := l.spec.buildCommand()
	if err != nil {
		return nil, err
	}
	if l.spec.WorkDir != "" {
		cmd.Dir = l.spec.WorkDir
	}
	if len(l.spec.Env) > 0 {
		cmd.Env = append(os.Environ(), l.spec.Env...)
	}
	configureSysProcAttr(cmd)

	var outW, errW io.WriteCloser
	if l.spec.Log.Enabled() {
		if l.spec.Log.Dir != "" {
			_ = os.MkdirAll(l.spec.Log.Dir, 0o750)
		}
		outW, errW, _ = l.spec.Log.Writers(l.spec.Name)
	}
	if outW != nil {
		cmd.Stdout = outW
	} else {
		cmd.Stdout, _ = os.OpenFile(os.DevNull, os.O_RDWR, 0)
	}
	if errW != nil {
		cmd.Stderr = errW
	} else {
		cmd.Stderr, _ = os.OpenFile(os.DevNull, os.O_RDWR, 0)
	}

	if err := cmd.Start(); err != nil {
		closeQuiet(outW)
		closeQuiet(errW)
		return nil, fmt.Errorf("spawn %s: %w", l.spec.Name, err)
	}
	c := &Child{
		cmd:   cmd,
		pid:   cmd.Process.Pid,
		grace: l.spec.StopGrace,
		done:  make(chan struct{}),
		outW:  outW,
		errW:  errW,
	}
	go c.wait()
	return c, nil
}

func closeQuiet(w io.WriteCloser) {
	if w != nil {
		_ = w.Close()
	}
}
