package launcher

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// buildCommand constructs the *exec.Cmd for the spec's command string.
// Plain executable names are resolved through resolveBinary so a bundled
// companion binary next to the host executable wins over PATH. Explicit shell
// invocations ("sh -c '...'") are honored without double wrapping, and
// metacharacters route the command through /bin/sh -c.
func (s *Spec) buildCommand() (*exec.Cmd, error) {
	cmdStr := strings.TrimSpace(s.Command)
	if cmdStr == "" {
		return nil, errors.New("empty sidecar command")
	}
	if _, afterC, ok := parseExplicitShell(cmdStr); ok {
		// Absolute shell path avoids PATH dependency when Env is overridden.
		// #nosec G204
		return exec.Command("/bin/sh", "-c", afterC), nil
	}
	if strings.ContainsAny(cmdStr, "|&;<>*?`$\"'(){}[]~") {
		// #nosec G204
		return exec.Command("/bin/sh", "-c", cmdStr), nil
	}
	parts := strings.Fields(cmdStr)
	bin, err := resolveBinary(parts[0])
	if err != nil {
		return nil, err
	}
	// ok: intentional execution of the configured sidecar
	// #nosec G204
	return exec.Command(bin, parts[1:]...), nil
}

// parseExplicitShell detects "sh -c <ARG>" or "/bin/sh -c <ARG>" prefixes.
// It preserves the substring after "-c " to avoid breaking quoting, stripping
// one pair of outer quotes when present.
func parseExplicitShell(cmdStr string) (string, string, bool) {
	trim := strings.TrimLeft(cmdStr, " \t")
	candidates := []string{"sh -c ", "/bin/sh -c ", "/usr/bin/sh -c "}
	for _, p := range candidates {
		if strings.HasPrefix(trim, p) {
			after := trim[len(p):]
			if n := len(after); n >= 2 {
				if (after[0] == '\'' && after[n-1] == '\'') || (after[0] == '"' && after[n-1] == '"') {
					after = after[1 : n-1]
				}
			}
			return strings.Fields(p)[0], after, true
		}
	}
	return "", "", false
}

// resolveBinary maps a logical executable name to a runnable path. A name
// containing a path separator is used as given. Otherwise the directory of
// the running executable is checked first (packaged companion binary), then
// PATH (sidecar toolchain available to a developer).
func resolveBinary(name string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) || filepath.IsAbs(name) {
		return name, nil
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", err
	}
	return path, nil
}
