package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"agentview/internal/display"
)

type liveMsg struct {
	content  string
	title    string
	subtitle string
}

type panelMsg struct {
	panel display.Panel
}

type clearLiveMsg struct{}

type turnDoneMsg struct {
	err error
}

// chanSink forwards sink calls into the program's message channel. The
// consuming goroutine calls it synchronously, so sink messages always arrive
// before the turnDoneMsg that follows them.
type chanSink struct {
	ch chan<- tea.Msg
}

func (s chanSink) UpdateLive(content, title, subtitle string) {
	s.ch <- liveMsg{content: content, title: title, subtitle: subtitle}
}

func (s chanSink) FinalizePanel(p display.Panel) {
	s.ch <- panelMsg{panel: p}
}

func (s chanSink) ClearLive() {
	s.ch <- clearLiveMsg{}
}
