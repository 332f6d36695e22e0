// Package config persists the single user preference (the selected editor)
// and carries the runtime settings read from the environment at startup.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"rmate-tray/internal/editors"
)

// ConfigFileName is the preference file inside the per-user config directory.
const ConfigFileName = "config.json"

// Preference is the single persisted value. It is written through on every
// change; the in-memory copy owned by the router stays authoritative for the
// running session even when a write fails.
type Preference struct {
	SelectedEditor editors.ID `json:"selected_editor"`
}

// DefaultPreference returns the documented first-run preference.
func DefaultPreference() Preference {
	return Preference{SelectedEditor: editors.Default}
}

// Store reads and writes the preference file at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store rooted at the per-OS config directory.
func NewStore() (*Store, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return NewStoreAt(filepath.Join(dir, ConfigFileName)), nil
}

// NewStoreAt creates a store for an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the preference file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted preference. A missing file, unreadable content,
// malformed JSON, or an unknown editor value all fall back to the default
// preference; Load never fails the caller.
func (s *Store) Load() Preference {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return DefaultPreference()
	}

	var raw struct {
		SelectedEditor string `json:"selected_editor"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return DefaultPreference()
	}

	id, ok := editors.Parse(raw.SelectedEditor)
	if !ok {
		return DefaultPreference()
	}
	return Preference{SelectedEditor: id}
}

// Save writes the preference as pretty-printed JSON. The write is
// best-effort: failures are returned so the caller can log them, but nothing
// downstream treats them as fatal.
func (s *Store) Save(pref Preference) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(pref, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preference: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preference file: %w", err)
	}
	return nil
}

// LogConfig controls logger construction in the logs package.
type LogConfig struct {
	Level         string `json:"level"`
	EnableFile    bool   `json:"enable_file"`
	EnableConsole bool   `json:"enable_console"`
	Filename      string `json:"filename"`
	LogDir        string `json:"log_dir,omitempty"`
	MaxSize       int    `json:"max_size"`    // megabytes
	MaxBackups    int    `json:"max_backups"` // files
	MaxAge        int    `json:"max_age"`     // days
	Compress      bool   `json:"compress"`
	JSONFormat    bool   `json:"json_format"`
}
