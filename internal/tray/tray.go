// Package tray hosts the menu-bar surface and the command router behind it.
// The systray widgets are plumbing; every decision lives in the Router.
package tray

import (
	"context"
	_ "embed"

	"fyne.io/systray"
	"go.uber.org/zap"

	"rmate-tray/internal/editors"
)

//go:embed icon-on.png
var iconOn []byte

//go:embed icon-off.png
var iconOff []byte

const tooltip = "RMate Server"

// App is the system tray application. It owns the menu items, forwards
// clicks to the router in arrival order, and renders the router's UI-update
// commands back onto the menu.
type App struct {
	logger  *zap.SugaredLogger
	version string
	router  *Router

	autoStart bool

	toggleItem  *systray.MenuItem
	editorItems map[editors.ID]*systray.MenuItem
	quitItem    *systray.MenuItem

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates the tray application and its router. shutdown is invoked on
// Quit after the helper has been stopped, before the tray loop exits.
func New(server Server, store PreferenceStore, logger *zap.SugaredLogger, version string, autoStart bool, shutdown func()) *App {
	a := &App{
		logger:      logger,
		version:     version,
		autoStart:   autoStart,
		editorItems: make(map[editors.ID]*systray.MenuItem),
	}

	a.router = NewRouter(server, a, store, logger, func() {
		if shutdown != nil {
			shutdown()
		}
		systray.Quit()
	})

	return a
}

// RequestQuit feeds a Quit event into the router, used by signal handlers.
func (a *App) RequestQuit() {
	a.router.Dispatch(Event{Kind: EventQuit})
}

// Run starts the tray. Blocking; must be called from the main goroutine.
func (a *App) Run(ctx context.Context) error {
	a.ctx, a.cancel = context.WithCancel(ctx)

	go func() {
		<-a.ctx.Done()
		systray.Quit()
	}()

	systray.Run(a.onReady, a.onExit)
	return a.ctx.Err()
}

func (a *App) onReady() {
	a.logger.Infow("System tray ready", "version", a.version)

	systray.SetTemplateIcon(iconOff, iconOff)
	systray.SetTooltip(tooltip)

	a.toggleItem = systray.AddMenuItem(labelStartServer, "Start or stop the rmate server")

	systray.AddSeparator()

	editorMenu := systray.AddMenuItem("Select Editor", "Editor opened for remote files")
	for _, id := range editors.All() {
		a.editorItems[id] = editorMenu.AddSubMenuItemCheckbox(
			editors.DisplayName(id), "", id == a.router.Selected())
	}

	systray.AddSeparator()

	a.quitItem = systray.AddMenuItem("Quit", "Quit rmate-tray")

	go a.forwardClicks()
	go a.router.Run(a.ctx, a.autoStart)
}

func (a *App) onExit() {
	a.logger.Info("System tray exiting")
	if a.cancel != nil {
		a.cancel()
	}
}

// forwardClicks multiplexes every menu item's click channel into the
// router's ordered event stream. A single goroutine does all forwarding, so
// clicks are applied in the order the user made them.
func (a *App) forwardClicks() {
	for {
		select {
		case <-a.toggleItem.ClickedCh:
			a.router.Dispatch(Event{Kind: EventToggleServer})
		case <-a.editorItems[editors.Zed].ClickedCh:
			a.router.Dispatch(Event{Kind: EventSelectEditor, Editor: editors.Zed})
		case <-a.editorItems[editors.VSCode].ClickedCh:
			a.router.Dispatch(Event{Kind: EventSelectEditor, Editor: editors.VSCode})
		case <-a.editorItems[editors.Sublime].ClickedCh:
			a.router.Dispatch(Event{Kind: EventSelectEditor, Editor: editors.Sublime})
		case <-a.quitItem.ClickedCh:
			a.router.Dispatch(Event{Kind: EventQuit})
		case <-a.ctx.Done():
			return
		}
	}
}

// UI implementation: the router calls these after each transition.

// SetToggleLabel updates the start/stop menu item text.
func (a *App) SetToggleLabel(label string) {
	if a.toggleItem != nil {
		a.toggleItem.SetTitle(label)
	}
}

// SetEditorChecked updates one editor checkmark.
func (a *App) SetEditorChecked(id editors.ID, checked bool) {
	item, ok := a.editorItems[id]
	if !ok {
		return
	}
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}

// SetIcon switches between the on and off tray icons.
func (a *App) SetIcon(running bool) {
	if running {
		systray.SetTemplateIcon(iconOn, iconOn)
	} else {
		systray.SetTemplateIcon(iconOff, iconOff)
	}
}
