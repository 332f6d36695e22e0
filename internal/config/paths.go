package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	osWindows = "windows"
	osDarwin  = "darwin"

	appDirName = "rmate-tray"
)

// GetConfigDir returns the standard per-user configuration directory for the
// current OS.
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case osWindows:
		return getWindowsConfigDir()
	case osDarwin:
		return getMacOSConfigDir()
	default:
		return getLinuxConfigDir()
	}
}

// getWindowsConfigDir uses %APPDATA%\rmate-tray.
func getWindowsConfigDir() (string, error) {
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appDirName), nil
	}
	return getDefaultConfigDir()
}

// getMacOSConfigDir uses ~/Library/Application Support/rmate-tray.
func getMacOSConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return getDefaultConfigDir()
	}
	return filepath.Join(homeDir, "Library", "Application Support", appDirName), nil
}

// getLinuxConfigDir follows the XDG Base Directory Specification:
// $XDG_CONFIG_HOME/rmate-tray or ~/.config/rmate-tray.
func getLinuxConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appDirName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return getDefaultConfigDir()
	}
	return filepath.Join(homeDir, ".config", appDirName), nil
}

// getDefaultConfigDir is the fallback when no platform path resolves.
func getDefaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appDirName), nil
	}
	return filepath.Join(homeDir, "."+appDirName), nil
}
