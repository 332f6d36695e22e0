package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings are the runtime knobs read once from the environment at startup.
// The tray application has no command-line surface of its own; everything
// tunable is an RMATETRAY_* variable.
type Settings struct {
	// ServerPath overrides helper binary discovery when set.
	ServerPath string

	// SettleDelay is the pause between killing the previous helper instance
	// and relaunching it, long enough for the OS to release the listening
	// port.
	SettleDelay time.Duration

	// StartOnLaunch starts the helper server as soon as the tray comes up.
	StartOnLaunch bool

	// LogLevel controls both console and file logging.
	LogLevel string

	// LogToFile enables the rotating log file in the per-OS log directory.
	LogToFile bool
}

// LoadSettings reads the RMATETRAY_* environment variables via viper and
// applies defaults for anything unset.
func LoadSettings() Settings {
	v := viper.New()
	v.SetEnvPrefix("RMATETRAY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("server-path", "")
	v.SetDefault("settle-ms", 500)
	v.SetDefault("start-on-launch", true)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-to-file", true)

	settleMs := v.GetInt("settle-ms")
	if settleMs < 0 {
		settleMs = 0
	}

	return Settings{
		ServerPath:    strings.TrimSpace(v.GetString("server-path")),
		SettleDelay:   time.Duration(settleMs) * time.Millisecond,
		StartOnLaunch: v.GetBool("start-on-launch"),
		LogLevel:      v.GetString("log-level"),
		LogToFile:     v.GetBool("log-to-file"),
	}
}
