//go:build !windows

package launcher

import "syscall"

// signalGroup delivers sig to the child's process group.
func signalGroup(pid int, sig syscall.Signal) error {
	return syscall.Kill(-pid, sig)
}

// processExists reports whether a process with the given pid is signalable.
func processExists(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}
