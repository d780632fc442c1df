package game

import "pagoda/registry"

// keyboardMethod maps key names from the TUI onto move names. It is the only
// built-in MoveMethod; alternatives (gestures, scripted replays) register
// under their own names.
type keyboardMethod struct {
	registry.Entity
}

var keyboardBindings = map[string]string{
	"left": "left", "h": "left",
	"right": "right", "l": "right",
	"up": "up", "k": "up",
	"down": "down", "j": "down",
}

func (m *keyboardMethod) Decode(input string) (string, bool) {
	name, ok := keyboardBindings[input]
	return name, ok
}

var _ = registry.Bind(MoveMethods, "keyboard", func(registry.NoArgs) MoveMethod {
	return &keyboardMethod{}
})
