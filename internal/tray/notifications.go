package tray

import (
	"github.com/gen2brain/beeep"
)

// Notify shows a desktop notification. Display failures are logged and
// swallowed; notifications are advisory and never affect tray state.
func (a *App) Notify(title, message string) {
	a.logger.Infow("Tray notification", "title", title, "message", message)

	if err := beeep.Notify(title, message, ""); err != nil {
		a.logger.Warnw("Failed to display notification", "error", err)
	}
}
