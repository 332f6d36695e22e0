package tray

import (
	"context"

	"go.uber.org/zap"

	"rmate-tray/internal/config"
	"rmate-tray/internal/editors"
)

// EventKind identifies a user-originated tray event.
type EventKind string

const (
	// EventToggleServer starts the helper when stopped and stops it when
	// running.
	EventToggleServer EventKind = "toggle_server"

	// EventSelectEditor changes the active editor, restarting the helper
	// when it is live.
	EventSelectEditor EventKind = "select_editor"

	// EventQuit stops the helper and terminates the application. Terminal;
	// nothing is processed after it.
	EventQuit EventKind = "quit"
)

// Event is one item in the ordered stream from the UI layer to the router.
type Event struct {
	Kind   EventKind
	Editor editors.ID // only set for EventSelectEditor
}

// Menu labels for the toggle item.
const (
	labelStartServer = "Start Server"
	labelStopServer  = "Stop Server"
)

// Server controls the supervised helper process.
type Server interface {
	Start(target string) error
	Stop()
	IsRunning() bool
}

// UI receives the update commands the router emits after each transition.
type UI interface {
	SetToggleLabel(label string)
	SetEditorChecked(id editors.ID, checked bool)
	SetIcon(running bool)
	Notify(title, message string)
}

// PreferenceStore persists the selected editor.
type PreferenceStore interface {
	Load() config.Preference
	Save(config.Preference) error
}

// Router applies user events against the supervisor and preference store,
// one at a time and in arrival order, and re-derives the full tray state
// after every transition. It is the only writer of the selected editor and
// the only caller of the supervisor, so the single-child invariant is never
// raced.
type Router struct {
	server   Server
	ui       UI
	store    PreferenceStore
	logger   *zap.SugaredLogger
	shutdown func()

	selected editors.ID

	events chan Event
	done   chan struct{}
}

// NewRouter creates a router seeded with the persisted preference.
func NewRouter(server Server, ui UI, store PreferenceStore, logger *zap.SugaredLogger, shutdown func()) *Router {
	pref := store.Load()
	return &Router{
		server:   server,
		ui:       ui,
		store:    store,
		logger:   logger,
		shutdown: shutdown,
		selected: pref.SelectedEditor,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}
}

// Selected returns the active editor.
func (r *Router) Selected() editors.ID {
	return r.selected
}

// Dispatch queues an event for the router. It blocks rather than drops when
// the router is busy, preserving the exact arrival order of user input, and
// returns silently once the router has terminated.
func (r *Router) Dispatch(ev Event) {
	select {
	case r.events <- ev:
	case <-r.done:
	}
}

// Run consumes events until Quit or context cancellation. Each event is
// processed to completion, including any settle delay inside a start, before
// the next one is accepted. autoStart launches the helper before the first
// event, mirroring the app's start-on-launch behavior.
func (r *Router) Run(ctx context.Context, autoStart bool) {
	defer close(r.done)

	if autoStart {
		r.startServer()
	}
	r.syncUI()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-r.events:
			r.logger.Debugw("Applying tray event", "kind", ev.Kind, "editor", ev.Editor)
			if quit := r.apply(ev); quit {
				return
			}
		}
	}
}

// apply performs one transition and reports whether it was terminal.
func (r *Router) apply(ev Event) bool {
	switch ev.Kind {
	case EventToggleServer:
		r.handleToggle()
	case EventSelectEditor:
		r.handleSelect(ev.Editor)
	case EventQuit:
		r.handleQuit()
		return true
	default:
		r.logger.Warnw("Unknown tray event", "kind", ev.Kind)
	}
	return false
}

func (r *Router) handleToggle() {
	if r.server.IsRunning() {
		r.server.Stop()
	} else {
		r.startServer()
	}
	r.syncUI()
}

func (r *Router) handleSelect(id editors.ID) {
	if id == r.selected {
		// Re-affirm the checkmark; the click itself may have toggled it off.
		r.syncUI()
		return
	}

	// The helper binds its editor at spawn time, so a live server has to be
	// stopped before the new selection can take effect.
	wasRunning := r.server.IsRunning()
	if wasRunning {
		r.server.Stop()
	}

	previous := r.selected
	r.selected = id
	r.ui.SetEditorChecked(previous, false)
	r.ui.SetEditorChecked(id, true)

	if err := r.store.Save(config.Preference{SelectedEditor: id}); err != nil {
		// The in-memory selection stays authoritative for this session.
		r.logger.Warnw("Failed to persist editor selection", "editor", id, "error", err)
	}

	if wasRunning {
		// Start carries the settle delay that lets the port be rebound.
		r.startServer()
	}
	r.syncUI()
}

func (r *Router) handleQuit() {
	r.logger.Info("Quit requested, stopping helper server")
	r.server.Stop()
	if r.shutdown != nil {
		r.shutdown()
	}
}

// startServer launches the helper against the selected editor's target.
// Failures are logged and surfaced as a notification; the tray keeps showing
// the stopped state and the application keeps running.
func (r *Router) startServer() {
	target := editors.LaunchTarget(r.selected)
	if err := r.server.Start(target); err != nil {
		r.logger.Errorw("Failed to start helper server",
			"editor", r.selected,
			"target", target,
			"error", err)
		r.ui.Notify("RMate Server", "Failed to start server: "+err.Error())
	}
}

// syncUI re-derives the complete tray state from the supervisor and the
// selected editor. Recomputing everything after each transition keeps the
// menu from drifting out of step with reality.
func (r *Router) syncUI() {
	running := r.server.IsRunning()

	if running {
		r.ui.SetToggleLabel(labelStopServer)
	} else {
		r.ui.SetToggleLabel(labelStartServer)
	}
	r.ui.SetIcon(running)

	for _, id := range editors.All() {
		r.ui.SetEditorChecked(id, id == r.selected)
	}
}
