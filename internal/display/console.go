package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ConsoleSink renders panels inline in the terminal. Finalized panels scroll
// up; the live panel is repainted in place below them. On a non-terminal
// stdout the live updates are skipped and only finalized panels print.
type ConsoleSink struct {
	out       *termenv.Output
	renderer  *Renderer
	isTTY     bool
	liveLines int
}

func NewConsoleSink(markdown bool) *ConsoleSink {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	width := 80
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
			width = w
		}
	}
	return &ConsoleSink{
		out:      termenv.NewOutput(os.Stdout),
		renderer: NewRenderer(width, markdown && isTTY),
		isTTY:    isTTY,
	}
}

// UpdateLive implements Sink with last-write-wins semantics: the previous
// live frame is erased and the new one painted in its place.
func (s *ConsoleSink) UpdateLive(content, title, subtitle string) {
	if !s.isTTY {
		return
	}
	s.eraseLive()
	frame := s.renderer.Live(content, title, subtitle)
	s.liveLines = strings.Count(frame, "\n") + 1
	fmt.Fprintln(s.out, frame)
}

// FinalizePanel implements Sink: the panel prints above the live area and
// stays there.
func (s *ConsoleSink) FinalizePanel(p Panel) {
	s.eraseLive()
	fmt.Fprintln(s.out, s.renderer.Panel(p))
	fmt.Fprintln(s.out)
}

// ClearLive implements Sink.
func (s *ConsoleSink) ClearLive() {
	s.eraseLive()
}

func (s *ConsoleSink) eraseLive() {
	if s.liveLines == 0 {
		return
	}
	for i := 0; i < s.liveLines; i++ {
		s.out.CursorPrevLine(1)
		s.out.ClearLine()
	}
	s.liveLines = 0
}
