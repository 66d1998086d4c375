//go:build windows

// Package process terminates the Chrome process tree left by a renderer.
package process

import (
	"errors"
	"os/exec"
	"strconv"
)

// ErrInvalidPID is returned for pids that cannot name a browser process.
var ErrInvalidPID = errors.New("invalid pid")

// KillTree force-kills pid and its children with taskkill /F /T.
func KillTree(pid int) error {
	if pid <= 0 {
		return ErrInvalidPID
	}
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- numeric pid
}
