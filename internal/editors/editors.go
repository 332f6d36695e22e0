// Package editors maps the closed set of supported editors to the launch
// targets handed to the rmate-server helper at spawn time.
package editors

// ID identifies one of the supported editors.
type ID string

const (
	Zed     ID = "zed"
	VSCode  ID = "vscode"
	Sublime ID = "sublime"
)

// Default is the editor selected on first run or when the persisted
// preference cannot be read.
const Default = Zed

type entry struct {
	launchTarget string
	displayName  string
	menuID       string
}

// The registry is baked in at build time. Adding an editor means adding a
// row here; there is no dynamic registration.
var registry = map[ID]entry{
	Zed: {
		launchTarget: "/usr/local/bin/zed",
		displayName:  "Zed",
		menuID:       "select_zed",
	},
	VSCode: {
		launchTarget: "/usr/local/bin/code",
		displayName:  "VS Code",
		menuID:       "select_vscode",
	},
	Sublime: {
		launchTarget: "/Applications/Sublime Text.app/Contents/SharedSupport/bin/subl",
		displayName:  "Sublime Text",
		menuID:       "select_sublime",
	},
}

var ordered = []ID{Zed, VSCode, Sublime}

// All returns every supported editor in stable menu order.
func All() []ID {
	out := make([]ID, len(ordered))
	copy(out, ordered)
	return out
}

// LaunchTarget returns the command path passed to rmate-server for the given
// editor. Total over the registry; unknown IDs fall back to the default
// editor's target so callers never receive an empty command.
func LaunchTarget(id ID) string {
	if e, ok := registry[id]; ok {
		return e.launchTarget
	}
	return registry[Default].launchTarget
}

// DisplayName returns the human-readable menu label for the editor.
func DisplayName(id ID) string {
	if e, ok := registry[id]; ok {
		return e.displayName
	}
	return registry[Default].displayName
}

// MenuID returns the stable menu item identifier for the editor.
func MenuID(id ID) string {
	if e, ok := registry[id]; ok {
		return e.menuID
	}
	return registry[Default].menuID
}

// Parse converts a persisted string into an editor ID. The second return
// value reports whether the input named a known editor.
func Parse(s string) (ID, bool) {
	id := ID(s)
	if _, ok := registry[id]; ok {
		return id, true
	}
	return Default, false
}
