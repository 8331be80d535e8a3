package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeMarkdown(t *testing.T) {
	assert.True(t, looksLikeMarkdown("# Heading"))
	assert.True(t, looksLikeMarkdown("use `code` with **bold**"))
	assert.True(t, looksLikeMarkdown("```go\nfunc main() {}\n```"))
	assert.False(t, looksLikeMarkdown("plain sentence with no markers"))
}

func TestRendererPanelLayout(t *testing.T) {
	r := NewRenderer(60, false)

	out := r.Panel(Panel{
		Title:    "Response - agent",
		Subtitle: "tokens in=10 out=5",
		Content:  "hello there",
		Style:    StyleResponse,
	})

	assert.Contains(t, out, "Response - agent")
	assert.Contains(t, out, "hello there")
	assert.Contains(t, out, "tokens in=10 out=5")
	// Title line sits above the bordered body.
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "Response - agent")
}

func TestRendererLiveUsesResponseColor(t *testing.T) {
	r := NewRenderer(60, false)
	out := r.Live("streaming...", "Reasoning - agent", "")
	assert.Contains(t, out, "Reasoning - agent")
	assert.Contains(t, out, "streaming...")
}

func TestRendererRejectsTinyWidths(t *testing.T) {
	r := NewRenderer(5, false)
	assert.Equal(t, 80, r.width)

	r.SetWidth(10)
	assert.Equal(t, 80, r.width)
	r.SetWidth(100)
	assert.Equal(t, 100, r.width)
}
