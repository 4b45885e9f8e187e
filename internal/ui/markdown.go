package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const defaultWrapWidth = 80

// markdownRenderer keeps the glamour renderer for the last (width, style)
// pair it was asked for.
type markdownRenderer struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
	width    int
	style    string
}

var entryRenderer markdownRenderer

func (r *markdownRenderer) get(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = defaultWrapWidth
	}
	if style == "" {
		style = "dark"
	}
	if r.renderer != nil && r.width == width && r.style == style {
		return r.renderer, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}
	r.renderer, r.width, r.style = renderer, width, style
	return renderer, nil
}

// Render renders markdown, falling back to the raw text on any error.
func (r *markdownRenderer) Render(content string, width int, style string) string {
	if content == "" {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	renderer, err := r.get(width, style)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}

// RenderMarkdown renders entry content for the detail pane using the given
// glamour style ("dark", "light", "notty", ...).
func RenderMarkdown(content string, width int, style string) string {
	return entryRenderer.Render(content, width, style)
}
