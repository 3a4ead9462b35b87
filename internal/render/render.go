// Package render provides styled terminal rendering of processed
// markdown for the preview command.
package render

import (
	"github.com/charmbracelet/glamour"
)

// Renderer wraps glamour with mdx-specific configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer with the given width and style.
// style may be "auto", a glamour style name such as "dark" or "light",
// or a path to a JSON style file. Empty means "auto".
func New(width int, style string) (*Renderer, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
	}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		// WithStylePath resolves built-in names first, then file paths
		opts = append(opts, glamour.WithStylePath(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
