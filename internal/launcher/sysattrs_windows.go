//go:build windows

package launcher

import "os/exec"

func configureSysProcAttr(_ *exec.Cmd) {}
