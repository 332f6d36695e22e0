package editors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryIsTotal(t *testing.T) {
	for _, id := range All() {
		assert.NotEmpty(t, LaunchTarget(id), "launch target for %s", id)
		assert.NotEmpty(t, DisplayName(id), "display name for %s", id)
		assert.NotEmpty(t, MenuID(id), "menu id for %s", id)
	}
}

func TestLaunchTargets(t *testing.T) {
	assert.Equal(t, "/usr/local/bin/zed", LaunchTarget(Zed))
	assert.Equal(t, "/usr/local/bin/code", LaunchTarget(VSCode))
	assert.Equal(t, "/Applications/Sublime Text.app/Contents/SharedSupport/bin/subl", LaunchTarget(Sublime))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
		known bool
	}{
		{"zed", "zed", Zed, true},
		{"vscode", "vscode", VSCode, true},
		{"sublime", "sublime", Sublime, true},
		{"unknown falls back to default", "emacs", Default, false},
		{"empty falls back to default", "", Default, false},
		{"case sensitive", "Zed", Default, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, ok)
		})
	}
}

func TestAllIsStableAndCopied(t *testing.T) {
	first := All()
	first[0] = ID("mutated")

	second := All()
	assert.Equal(t, []ID{Zed, VSCode, Sublime}, second)
}
