package display

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var styleColors = map[Style]lipgloss.Color{
	StyleResponse:  lipgloss.Color("6"),  // cyan
	StyleReasoning: lipgloss.Color("4"),  // blue
	StyleCall:      lipgloss.Color("5"),  // magenta
	StyleResult:    lipgloss.Color("2"),  // green
	StyleUser:      lipgloss.Color("3"),  // yellow
}

var markdownMarkers = []string{"# ", "```", "**", "- ", "> ", "* "}

// Renderer turns panels into styled terminal blocks. It is shared by the
// inline console sink and the TUI front-end.
type Renderer struct {
	width int
	md    *glamour.TermRenderer
}

// NewRenderer builds a renderer for the given terminal width. When markdown
// is enabled, finalized response panels containing markdown markers are
// rendered through glamour.
func NewRenderer(width int, markdown bool) *Renderer {
	if width < 20 {
		width = 80
	}
	r := &Renderer{width: width}
	if markdown {
		if md, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width-6),
		); err == nil {
			r.md = md
		}
	}
	return r
}

func (r *Renderer) SetWidth(width int) {
	if width >= 20 {
		r.width = width
	}
}

// Panel renders a finalized panel: a colored title line, the bordered body,
// and an optional dim subtitle line.
func (r *Renderer) Panel(p Panel) string {
	content := p.Content
	if p.Style == StyleResponse && r.md != nil && looksLikeMarkdown(content) {
		if rendered, err := r.md.Render(content); err == nil {
			content = strings.TrimRight(rendered, "\n")
		}
	}
	return r.block(content, p.Title, p.Subtitle, styleColors[p.Style])
}

// Live renders the in-progress panel. The live area always uses the response
// color; the title carries the distinction (Response vs Reasoning).
func (r *Renderer) Live(content, title, subtitle string) string {
	return r.block(content, title, subtitle, styleColors[StyleResponse])
}

func (r *Renderer) block(content, title, subtitle string, color lipgloss.Color) string {
	inner := r.width - 6
	if inner < 10 {
		inner = 10
	}
	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(inner + 2).
		Render(content)

	var b strings.Builder
	if title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(color).Render(title))
		b.WriteString("\n")
	}
	b.WriteString(body)
	if subtitle != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(subtitle))
	}
	return b.String()
}

func looksLikeMarkdown(s string) bool {
	for _, marker := range markdownMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
