// Package markdown provides styled markdown rendering for the TUI.
package markdown

import (
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	gocache "github.com/patrickmn/go-cache"

	"pagoda/internal/log"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

const (
	renderTTL       = 10 * time.Minute
	cleanupInterval = 30 * time.Minute
)

// Renderer wraps glamour with pagoda-specific configuration. Rendered output
// is cached by source text, so redrawing a static overlay every frame does
// not re-run the markdown pipeline.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	cache    *gocache.Cache
}

// New creates a markdown renderer with the given width and style.
// style should be "dark" or "light". Defaults to "dark" if empty.
// Use a fixed style instead of WithAutoStyle() to avoid terminal OSC queries.
// WithAutoStyle() creates a new lipgloss renderer that detects light/dark
// background by querying the terminal, which causes escape sequence responses
// to leak into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		renderer: r,
		width:    width,
		cache:    gocache.New(renderTTL, cleanupInterval),
	}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	key := fmt.Sprintf("%d:%s", r.width, markdown)
	if cached, found := r.cache.Get(key); found {
		if out, ok := cached.(string); ok {
			log.Debug(log.CatCache, "markdown cache hit", "bytes", len(out))
			return out, nil
		}
	}

	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", err
	}
	r.cache.Set(key, out, renderTTL)
	return out, nil
}
