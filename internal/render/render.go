// Package render previews documentation pages in the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"flowdocs/internal/docs"
)

// Renderer renders a page body as styled terminal output.
type Renderer struct {
	width int
}

// New returns a renderer wrapping at width columns (default 80).
func New(width int) *Renderer {
	if width <= 0 {
		width = 80
	}
	return &Renderer{width: width}
}

// Page renders the front matter header line followed by the styled body.
func (r *Renderer) Page(p *docs.Page) (string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(r.width),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}

	body, err := tr.Render(string(p.Body))
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", p.Path, err)
	}

	var b strings.Builder
	b.WriteString(headerLine(p))
	b.WriteString(body)
	return b.String(), nil
}

func headerLine(p *docs.Page) string {
	if !p.HasFrontMatter {
		return fmt.Sprintf("%s\n", p.Path)
	}
	fm := p.FrontMatter
	var parts []string
	if fm.Description != "" {
		parts = append(parts, fm.Description)
	}
	if len(fm.Tags) > 0 {
		parts = append(parts, "["+strings.Join(fm.Tags, ", ")+"]")
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s\n", p.Path)
	}
	return fmt.Sprintf("%s — %s\n", p.Path, strings.Join(parts, " "))
}
