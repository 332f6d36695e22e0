package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rmate-tray/internal/editors"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "config.json"))

	pref := store.Load()

	assert.Equal(t, editors.Default, pref.SelectedEditor)
}

func TestLoadMalformedContentReturnsDefault(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "definitely not json"},
		{"empty file", ""},
		{"wrong type", `{"selected_editor": 42}`},
		{"unknown editor", `{"selected_editor": "emacs"}`},
		{"empty editor", `{"selected_editor": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			pref := NewStoreAt(path).Load()

			assert.Equal(t, DefaultPreference(), pref)
		})
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	store := NewStoreAt(path)

	require.NoError(t, store.Save(Preference{SelectedEditor: editors.Sublime}))

	pref := store.Load()
	assert.Equal(t, editors.Sublime, pref.SelectedEditor)

	// File is written as JSON with the documented field name.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"selected_editor"`)
	assert.Contains(t, string(data), `"sublime"`)
}

func TestSaveCreatesConfigDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	store := NewStoreAt(filepath.Join(dir, "config.json"))

	require.NoError(t, store.Save(DefaultPreference()))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadSettingsDefaults(t *testing.T) {
	for _, key := range []string{
		"RMATETRAY_SERVER_PATH",
		"RMATETRAY_SETTLE_MS",
		"RMATETRAY_START_ON_LAUNCH",
		"RMATETRAY_LOG_LEVEL",
		"RMATETRAY_LOG_TO_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	s := LoadSettings()

	assert.Empty(t, s.ServerPath)
	assert.Equal(t, 500*time.Millisecond, s.SettleDelay)
	assert.True(t, s.StartOnLaunch)
	assert.Equal(t, "info", s.LogLevel)
	assert.True(t, s.LogToFile)
}

func TestLoadSettingsEnvOverrides(t *testing.T) {
	t.Setenv("RMATETRAY_SERVER_PATH", "/opt/rmate/bin/rmate-server")
	t.Setenv("RMATETRAY_SETTLE_MS", "50")
	t.Setenv("RMATETRAY_START_ON_LAUNCH", "false")
	t.Setenv("RMATETRAY_LOG_LEVEL", "debug")

	s := LoadSettings()

	assert.Equal(t, "/opt/rmate/bin/rmate-server", s.ServerPath)
	assert.Equal(t, 50*time.Millisecond, s.SettleDelay)
	assert.False(t, s.StartOnLaunch)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadSettingsNegativeSettleClampsToZero(t *testing.T) {
	t.Setenv("RMATETRAY_SETTLE_MS", "-100")

	s := LoadSettings()

	assert.Equal(t, time.Duration(0), s.SettleDelay)
}
