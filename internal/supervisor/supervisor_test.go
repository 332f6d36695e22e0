//go:build !windows

package supervisor

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// writeHelperScript creates a fake helper binary that sleeps until killed.
func writeHelperScript(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fake-rmate-server")
	script := "#!/bin/sh\nsleep 60\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func newTestSupervisor(t *testing.T, binary string) *Supervisor {
	t.Helper()

	logger := zap.NewNop().Sugar()
	s := New(Config{
		BinaryPath:  binary,
		SettleDelay: time.Millisecond,
		StopGrace:   2 * time.Second,
	}, logger)
	t.Cleanup(s.Stop)
	return s
}

func TestStartSpawnsHelper(t *testing.T) {
	s := newTestSupervisor(t, writeHelperScript(t))

	require.NoError(t, s.Start("/usr/local/bin/zed"))

	assert.True(t, s.IsRunning())
	assert.NotZero(t, s.Pid())
}

func TestStartIsIdempotentWhileRunning(t *testing.T) {
	s := newTestSupervisor(t, writeHelperScript(t))

	require.NoError(t, s.Start("/usr/local/bin/zed"))
	firstPid := s.Pid()

	// A second start must not create a second child.
	require.NoError(t, s.Start("/usr/local/bin/code"))

	assert.Equal(t, firstPid, s.Pid())
	assert.True(t, s.IsRunning())
}

func TestStopTerminatesChild(t *testing.T) {
	s := newTestSupervisor(t, writeHelperScript(t))

	require.NoError(t, s.Start("/usr/local/bin/zed"))
	pid := s.Pid()

	s.Stop()

	assert.False(t, s.IsRunning())
	assert.Zero(t, s.Pid())

	// The process group should be gone shortly after Stop returns.
	assert.Eventually(t, func() bool {
		err := syscall.Kill(-pid, 0)
		return err == syscall.ESRCH
	}, 5*time.Second, 50*time.Millisecond)
}

func TestStopWhileAbsentIsNoOp(t *testing.T) {
	s := newTestSupervisor(t, writeHelperScript(t))

	assert.NotPanics(t, func() {
		s.Stop()
		s.Stop()
	})
	assert.False(t, s.IsRunning())
}

func TestStartMissingBinary(t *testing.T) {
	s := newTestSupervisor(t, filepath.Join(t.TempDir(), "does-not-exist"))

	err := s.Start("/usr/local/bin/zed")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBinaryNotFound)
	assert.False(t, s.IsRunning())
}

func TestStartFailureLeavesStateAbsent(t *testing.T) {
	s := newTestSupervisor(t, filepath.Join(t.TempDir(), "missing"))

	require.Error(t, s.Start("/usr/local/bin/zed"))

	// A later start with a valid binary must still work.
	s.cfg.BinaryPath = writeHelperScript(t)
	require.NoError(t, s.Start("/usr/local/bin/zed"))
	assert.True(t, s.IsRunning())
}

func TestRestartReplacesChild(t *testing.T) {
	s := newTestSupervisor(t, writeHelperScript(t))

	require.NoError(t, s.Start("/usr/local/bin/zed"))
	firstPid := s.Pid()

	require.NoError(t, s.Restart("/usr/local/bin/code"))

	assert.True(t, s.IsRunning())
	assert.NotEqual(t, firstPid, s.Pid())
}

func TestResolveBinaryOverride(t *testing.T) {
	helper := writeHelperScript(t)

	resolved, err := ResolveBinary(helper)
	require.NoError(t, err)
	assert.Equal(t, helper, resolved)
}

func TestResolveBinaryBadOverride(t *testing.T) {
	_, err := ResolveBinary(filepath.Join(t.TempDir(), "nope"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBinaryNotFound)
}
