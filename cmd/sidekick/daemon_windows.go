//go:build windows

package main

import "os/exec"

func configureDaemonAttrs(_ *exec.Cmd) {}
