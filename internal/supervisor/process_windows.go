//go:build windows

package supervisor

import (
	"os/exec"
	"syscall"
	"time"
)

func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

// terminate kills the child directly; Windows has no SIGTERM equivalent that
// console-less processes reliably honor.
func (s *Supervisor) terminate(c *child) {
	if c.cmd.Process != nil {
		if err := c.cmd.Process.Kill(); err != nil {
			s.logger.Warnw("Failed to kill helper process", "pid", c.pid, "error", err)
		}
	}

	select {
	case <-c.done:
		s.logger.Infow("Helper server stopped", "pid", c.pid)
	case <-time.After(s.cfg.StopGrace):
		s.logger.Warnw("Helper did not exit after kill", "pid", c.pid)
	}
}

func killByName(name string) error {
	return exec.Command("taskkill", "/F", "/IM", name+".exe").Run()
}
