package game

import "pagoda/registry"

// mapText is a TextMethod backed by a fixed entry table. Unknown entries
// yield "" so callers can fall back gracefully.
type mapText struct {
	registry.Entity
	entries map[string]string
}

func (t *mapText) Text(entry string) string { return t.entries[entry] }

var defaultEntries = map[string]string{
	"title":      "Square Merge",
	"status":     "Score: %d  Moves: %d  Undo: %d",
	"win":        "You win! Keep going or press q to quit.",
	"lose":       "No moves left. Press u to undo or q to quit.",
	"help.title": "# Square Merge",
	"help.body": `Slide tiles with the arrow keys (or h/j/k/l). Equal tiles merge
and double. Reach the **2048** tile to win.

| Key | Action |
|-----|--------|
| arrows, hjkl | shift tiles |
| u | undo |
| ? | toggle help |
| q | quit |
`,
}

var terseEntries = map[string]string{
	"title":      "2048",
	"status":     "s:%d m:%d u:%d",
	"win":        "win",
	"lose":       "stuck",
	"help.title": "# 2048",
	"help.body":  "Arrows shift, u undoes, q quits.\n",
}

var (
	_ = registry.Bind(TextMethods, "default", func(registry.NoArgs) TextMethod {
		return &mapText{entries: defaultEntries}
	})
	_ = registry.Bind(TextMethods, "terse", func(registry.NoArgs) TextMethod {
		return &mapText{entries: terseEntries}
	})
)
