package logs

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogDir(t *testing.T) {
	logDir, err := GetLogDir()
	require.NoError(t, err)
	require.NotEmpty(t, logDir)

	assert.Contains(t, logDir, appDirName)
	assert.True(t, filepath.IsAbs(logDir))
}

func TestOSSpecificLogDirs(t *testing.T) {
	tests := []struct {
		name     string
		os       string
		expected []string
	}{
		{
			name:     "Windows",
			os:       "windows",
			expected: []string{appDirName, "logs"},
		},
		{
			name:     "macOS",
			os:       "darwin",
			expected: []string{"Library", "Logs", appDirName},
		},
		{
			name:     "Linux",
			os:       "linux",
			expected: []string{appDirName, "logs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if runtime.GOOS != tt.os {
				t.Skipf("Skipping %s test on %s", tt.name, runtime.GOOS)
			}

			logDir, err := GetLogDir()
			require.NoError(t, err)

			for _, component := range tt.expected {
				assert.Contains(t, logDir, component,
					"Log directory should contain %s: %s", component, logDir)
			}
		})
	}
}

func TestLinuxLogDirHonorsXDGStateHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_STATE_HOME only applies on linux")
	}

	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	logDir, err := GetLogDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(stateHome, appDirName, "logs"), logDir)
}

func TestGetLogFilePathWithDir(t *testing.T) {
	dir := t.TempDir()

	path, err := GetLogFilePathWithDir(dir, "tray.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tray.log"), path)

	// The directory is created as a side effect.
	assert.DirExists(t, dir)
}

func TestGetLogFilePathWithEmptyDirUsesStandardLocation(t *testing.T) {
	path, err := GetLogFilePathWithDir("", "tray.log")
	require.NoError(t, err)
	assert.Contains(t, path, appDirName)
	assert.Equal(t, "tray.log", filepath.Base(path))
}
