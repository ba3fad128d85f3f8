package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// glamour renderers are expensive to build; keep one per wrap width.
var (
	mu        sync.Mutex
	renderers = map[int]*glamour.TermRenderer{}
	styleName = "dark"
)

// SetStyle selects the glamour standard style ("dark", "light", "notty", ...)
// and drops every cached renderer.
func SetStyle(name string) {
	mu.Lock()
	defer mu.Unlock()
	if name == styleName {
		return
	}
	styleName = name
	renderers = map[int]*glamour.TermRenderer{}
}

// Render converts markdown text to styled ANSI output wrapped at 100 columns.
func Render(md string) string {
	return RenderWidth(md, 100)
}

// RenderWidth renders md wrapped to width. It falls back to the raw text when
// the renderer is unavailable or fails.
func RenderWidth(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	r := renderer(width)
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// glamour pads with blank lines; trim for inline display.
	return strings.Trim(out, "\n")
}

func renderer(width int) *glamour.TermRenderer {
	if width < 10 {
		width = 10
	}
	mu.Lock()
	defer mu.Unlock()
	if r, ok := renderers[width]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styleName),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = r
	return r
}
