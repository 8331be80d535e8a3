package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agentview/internal/display"
	"agentview/internal/source"
	"agentview/internal/stream"
)

// Options configures the full-screen chat.
type Options struct {
	// NewSource builds the event source for one prompt.
	NewSource func(prompt string) source.Source
	// Markdown enables glamour rendering of finalized response panels.
	Markdown bool
	// Extra, when set, receives every sink call alongside the screen, e.g.
	// the transcript store.
	Extra display.Sink
	// OnPrompt runs before each turn starts, e.g. to open a transcript turn.
	OnPrompt func(prompt string)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

type model struct {
	opts     Options
	renderer *display.Renderer

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	events chan tea.Msg
	cancel context.CancelFunc

	blocks    []string
	live      string
	streaming bool
	errText   string
	ready     bool
}

func newModel(opts Options) model {
	input := textinput.New()
	input.Placeholder = "Type a message and press enter"
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return model{
		opts:     opts,
		renderer: display.NewRenderer(80, opts.Markdown),
		input:    input,
		spin:     spin,
		events:   make(chan tea.Msg, 64),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// recv delivers the next stream message. It is re-armed after every stream
// message and dropped once the turn reports done.
func (m model) recv() tea.Cmd {
	ch := m.events
	return func() tea.Msg {
		return <-ch
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.renderer.SetWidth(msg.Width)
		headerHeight := 2
		footerHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.input.Width = msg.Width - 4
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.streaming && m.cancel != nil {
				m.cancel()
				return m, nil
			}
			return m, tea.Quit
		case "esc":
			if !m.streaming {
				return m, tea.Quit
			}
		case "enter":
			if m.streaming {
				return m, nil
			}
			prompt := strings.TrimSpace(m.input.Value())
			if prompt == "" {
				return m, nil
			}
			m.input.Reset()
			return m.startTurn(prompt)
		}

	case liveMsg:
		m.live = m.renderer.Live(msg.content, msg.title, msg.subtitle)
		m.refresh()
		return m, m.recv()

	case panelMsg:
		m.blocks = append(m.blocks, m.renderer.Panel(msg.panel))
		m.refresh()
		return m, m.recv()

	case clearLiveMsg:
		m.live = ""
		m.refresh()
		return m, m.recv()

	case turnDoneMsg:
		m.streaming = false
		m.cancel = nil
		m.live = ""
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.errText = msg.err.Error()
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.streaming {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m model) startTurn(prompt string) (tea.Model, tea.Cmd) {
	m.errText = ""
	if m.opts.OnPrompt != nil {
		m.opts.OnPrompt(prompt)
	}

	var sink display.Sink = chanSink{ch: m.events}
	if m.opts.Extra != nil {
		sink = display.NewTee(sink, m.opts.Extra)
	}

	machine := display.NewMachine(sink)
	machine.User(prompt)

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.streaming = true

	src := m.opts.NewSource(prompt)
	session := stream.NewSession(machine)
	events := m.events
	go func() {
		err := source.Consume(ctx, src, session)
		events <- turnDoneMsg{err: err}
	}()

	return m, tea.Batch(m.recv(), m.spin.Tick)
}

func (m *model) refresh() {
	if !m.ready {
		return
	}
	parts := make([]string, 0, len(m.blocks)+1)
	parts = append(parts, m.blocks...)
	if m.live != "" {
		parts = append(parts, m.live)
	}
	m.viewport.SetContent(strings.Join(parts, "\n\n"))
	m.viewport.GotoBottom()
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := headerStyle.Render("agentview") + "\n"

	var footer strings.Builder
	footer.WriteString("\n")
	if m.streaming {
		footer.WriteString(m.spin.View() + " streaming (ctrl+c to cancel)\n")
	} else {
		footer.WriteString(m.input.View() + "\n")
	}
	if m.errText != "" {
		footer.WriteString(errorStyle.Render("Error: "+m.errText) + "\n")
	}
	footer.WriteString(helpStyle.Render("enter send • esc quit"))

	return fmt.Sprintf("%s%s%s", header, m.viewport.View(), footer.String())
}
