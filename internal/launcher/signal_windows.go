//go:build windows

package launcher

import (
	"os"
	"syscall"
)

// signalGroup terminates the child process. Windows has no process groups in
// the POSIX sense, so both SIGTERM and SIGKILL map to a hard kill.
func signalGroup(pid int, _ syscall.Signal) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return p.Kill()
}

func processExists(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = p
	return true
}
