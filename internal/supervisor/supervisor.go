// Package supervisor owns the lifecycle of the rmate-server helper process.
// At most one child is alive at any time; callers drive it through Start,
// Stop and Restart and the supervisor never lets a failure escape as fatal.
package supervisor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Start failure taxonomy. Callers test with errors.Is and report; a failed
// start never terminates the application.
var (
	// ErrBinaryNotFound means the resolved helper path does not exist.
	ErrBinaryNotFound = errors.New("rmate-server binary not found")

	// ErrNotExecutable means the helper binary could not be marked executable.
	ErrNotExecutable = errors.New("rmate-server binary could not be made executable")

	// ErrSpawn means the OS refused to create the helper process.
	ErrSpawn = errors.New("failed to spawn rmate-server")
)

const (
	// ServerProcessName is the helper's well-known process name, used for
	// stale-instance cleanup before each launch.
	ServerProcessName = "rmate-server"

	// DefaultSettleDelay is the pause after stale cleanup that lets the OS
	// release the helper's listening port before relaunch.
	DefaultSettleDelay = 500 * time.Millisecond

	defaultStopGrace = 5 * time.Second

	targetFlag = "--target"
)

// Config configures the supervisor.
type Config struct {
	// BinaryPath is the resolved helper binary (see ResolveBinary).
	BinaryPath string

	// ProcessName is matched for pre-launch stale cleanup. Empty disables
	// the cleanup pass.
	ProcessName string

	// SettleDelay overrides DefaultSettleDelay when positive.
	SettleDelay time.Duration

	// StopGrace bounds how long Stop waits after SIGTERM before escalating.
	StopGrace time.Duration
}

// child is the handle to one running helper process.
type child struct {
	cmd  *exec.Cmd
	pid  int
	done chan struct{} // closed by the reaper once the process is waited on
}

// Supervisor manages the single helper server child process.
type Supervisor struct {
	cfg    Config
	logger *zap.SugaredLogger

	mu    sync.Mutex
	child *child // nil means no child (Absent)
}

// New creates a supervisor. Zero durations in cfg get defaults.
func New(cfg Config, logger *zap.SugaredLogger) *Supervisor {
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.StopGrace <= 0 {
		cfg.StopGrace = defaultStopGrace
	}
	return &Supervisor{
		cfg:    cfg,
		logger: logger,
	}
}

// Start launches the helper server against the given editor launch target.
// Calling Start while a child is already running is a no-op. The call blocks
// for the settle delay; the event loop queues further input meanwhile.
func (s *Supervisor) Start(target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.child != nil {
		s.logger.Debugw("Start ignored, helper already running", "pid", s.child.pid)
		return nil
	}

	// Reclaim the listening port from a crashed or orphaned prior instance,
	// then give the OS a moment to release it.
	s.killStale()
	time.Sleep(s.cfg.SettleDelay)

	info, err := os.Stat(s.cfg.BinaryPath)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrBinaryNotFound, s.cfg.BinaryPath)
	}

	if err := os.Chmod(s.cfg.BinaryPath, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrNotExecutable, err)
	}

	cmd := exec.Command(s.cfg.BinaryPath, targetFlag, target)
	cmd.SysProcAttr = sysProcAttr()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrSpawn, err)
	}

	c := &child{
		cmd:  cmd,
		pid:  cmd.Process.Pid,
		done: make(chan struct{}),
	}
	s.child = c

	s.logger.Infow("Helper server started",
		"binary", s.cfg.BinaryPath,
		"target", target,
		"pid", c.pid)

	go s.reap(c)

	return nil
}

// Stop terminates the running helper, if any. The handle is dropped
// regardless of signalling errors and Stop never blocks past the grace
// period; stopping an absent child is a no-op.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	c := s.child
	s.child = nil
	s.mu.Unlock()

	if c == nil {
		return
	}

	s.logger.Infow("Stopping helper server", "pid", c.pid)
	s.terminate(c)
}

// Restart stops the running helper and starts it against a new target. Used
// when the editor selection changes while the server is live; the helper
// binds its editor at spawn time so a relaunch is the only way to apply the
// change.
func (s *Supervisor) Restart(target string) error {
	s.Stop()
	return s.Start(target)
}

// IsRunning reports whether a child handle exists. It does not probe the OS:
// a helper that died on its own still counts as running until an explicit
// Stop, matching the tray's declared (not observed) state.
func (s *Supervisor) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.child != nil
}

// Pid returns the current child's process ID, or 0 when absent.
func (s *Supervisor) Pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.child == nil {
		return 0
	}
	return s.child.pid
}

// reap waits on the child so it never becomes a zombie. The exit is logged
// but deliberately does not clear the handle: there is no liveness probe and
// tray state only changes on explicit Stop.
func (s *Supervisor) reap(c *child) {
	err := c.cmd.Wait()
	close(c.done)

	if err != nil {
		s.logger.Infow("Helper server exited", "pid", c.pid, "error", err)
	} else {
		s.logger.Infow("Helper server exited normally", "pid", c.pid)
	}
}

// killStale best-effort terminates stray processes matching the helper's
// process name. Failures only get logged; a clean system has nothing to kill.
func (s *Supervisor) killStale() {
	if s.cfg.ProcessName == "" {
		return
	}
	if err := killByName(s.cfg.ProcessName); err != nil {
		s.logger.Debugw("Stale process cleanup", "name", s.cfg.ProcessName, "result", err)
	}
}
