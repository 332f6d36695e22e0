//go:build !windows

package supervisor

import (
	"errors"
	"os/exec"
	"syscall"
	"time"
)

// sysProcAttr puts the helper in its own process group so termination
// signals reach any children it spawns.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// terminate sends SIGTERM to the child's process group and escalates to
// SIGKILL when it does not exit within the grace period.
func (s *Supervisor) terminate(c *child) {
	if err := syscall.Kill(-c.pid, syscall.SIGTERM); err != nil && !errors.Is(err, syscall.ESRCH) {
		s.logger.Warnw("Failed to send SIGTERM", "pid", c.pid, "error", err)
	}

	select {
	case <-c.done:
		s.logger.Infow("Helper server stopped", "pid", c.pid)
	case <-time.After(s.cfg.StopGrace):
		s.logger.Warnw("Helper did not stop gracefully, sending SIGKILL", "pid", c.pid)
		if err := syscall.Kill(-c.pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
			s.logger.Errorw("Failed to send SIGKILL", "pid", c.pid, "error", err)
		}
	}
}

// killByName matches stray helper instances by command line.
func killByName(name string) error {
	return exec.Command("pkill", "-f", name).Run()
}
