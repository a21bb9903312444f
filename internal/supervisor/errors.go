package supervisor

// SpawnError indicates the OS refused to create the sidecar process (binary
// missing, not executable, spawn syscall error). Recoverable: the caller may
// retry or treat the sidecar as running externally.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string { return "spawn failed: " + e.Err.Error() }
func (e *SpawnError) Unwrap() error { return e.Err }

// KillError indicates the OS refused or failed to terminate a tracked
// sidecar. The slot is already cleared when it is returned, so the process
// may be orphaned.
type KillError struct {
	Err error
}

func (e *KillError) Error() string { return "kill failed: " + e.Err.Error() }
func (e *KillError) Unwrap() error { return e.Err }
