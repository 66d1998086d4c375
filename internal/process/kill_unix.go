//go:build !windows

// Package process terminates the Chrome process tree left by a renderer.
package process

import (
	"errors"
	"syscall"
)

// ErrInvalidPID is returned for pids that would address the caller's own group.
var ErrInvalidPID = errors.New("invalid pid")

// KillTree sends SIGKILL to the process group led by pid.
// Rod launches Chrome as a group leader, so renderer and GPU helpers go too.
func KillTree(pid int) error {
	if pid <= 0 {
		return ErrInvalidPID
	}
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return err
	}
	return nil
}
