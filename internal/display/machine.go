package display

import (
	"fmt"
	"strings"

	"agentview/internal/stream"
)

// Style selects the visual treatment of a panel.
type Style string

const (
	StyleResponse  Style = "response"
	StyleReasoning Style = "reasoning"
	StyleCall      Style = "call"
	StyleResult    Style = "result"
	StyleUser      Style = "user"
)

// Panel is one finalized block of display content.
type Panel struct {
	Title    string
	Subtitle string
	Content  string
	Style    Style
}

// Sink renders live and finalized content. UpdateLive is last-write-wins;
// FinalizePanel appends; ClearLive removes the live area.
type Sink interface {
	UpdateLive(content, title, subtitle string)
	FinalizePanel(p Panel)
	ClearLive()
}

// State is the render machine's lifecycle position.
type State int

const (
	StateEmpty State = iota
	StateStreaming
	StateFinalized
)

// Machine owns the live buffer and the finalized panel list, reacting to the
// normalized signals a stream.Session emits. Call and result panels are
// never live: they are emitted already finalized. Within one usage flush the
// accumulated call panels come first, then the text panel with the usage
// subtitle, so the reader sees what was called before the answer that used
// the results.
type Machine struct {
	sink      Sink
	state     State
	live      strings.Builder
	liveStyle Style
	author    string
	subtitle  string
	panels    []Panel
}

func NewMachine(sink Sink) *Machine {
	return &Machine{sink: sink, liveStyle: StyleResponse}
}

func (m *Machine) State() State {
	return m.state
}

// Panels returns the finalized panels in arrival order.
func (m *Machine) Panels() []Panel {
	return m.panels
}

// User echoes the user's message as an already-finalized panel.
func (m *Machine) User(text string) {
	m.finalize(Panel{Title: "User Message", Content: text, Style: StyleUser})
}

// AppendText implements stream.Presenter.
func (m *Machine) AppendText(author, delta string) {
	// A reasoning buffer still open here means the style is switching;
	// finalize it so at most one buffer is ever open.
	if m.live.Len() > 0 && m.liveStyle != StyleResponse {
		m.flushLive(m.author)
	}
	m.author = author
	m.liveStyle = StyleResponse
	m.live.WriteString(delta)
	m.state = StateStreaming
	m.sink.UpdateLive(m.live.String(), responseTitle(author), "")
}

// AppendReasoning implements stream.Presenter.
func (m *Machine) AppendReasoning(author, delta string) {
	if m.live.Len() > 0 && m.liveStyle != StyleReasoning {
		m.flushLive(m.author)
	}
	m.author = author
	m.liveStyle = StyleReasoning
	m.live.WriteString(delta)
	m.state = StateStreaming
	m.sink.UpdateLive(m.live.String(), reasoningTitle(author), "")
}

// FlushLive implements stream.Presenter: the previous speaker's live buffer
// is finalized before the new one's content accumulates.
func (m *Machine) FlushLive(author string) {
	if author == "" {
		author = m.author
	}
	m.flushLive(author)
}

// EndReasoning implements stream.Presenter.
func (m *Machine) EndReasoning(author string) {
	m.flushLive(author)
}

// FunctionResult implements stream.Presenter.
func (m *Machine) FunctionResult(author string, res stream.FunctionResultContent) {
	m.finalize(Panel{
		Title:   titled("Function Result", author),
		Content: res.Result,
		Style:   StyleResult,
	})
}

// UsageFlush implements stream.Presenter.
func (m *Machine) UsageFlush(author string, calls []stream.Call, usage stream.UsageSummary) {
	for _, call := range calls {
		owner := call.Author
		if owner == "" {
			owner = author
		}
		m.finalize(Panel{
			Title:   titled("Function Call", owner),
			Content: fmt.Sprintf("Calling: %s\nArguments: %s", call.Name, call.Arguments),
			Style:   StyleCall,
		})
	}
	if sub := FormatUsage(usage); sub != "" {
		m.subtitle = sub
	}
	if m.live.Len() > 0 && m.liveStyle == StyleResponse {
		m.flushLive(author)
	}
}

// StreamEnded implements stream.Presenter: natural end of stream flushes any
// still-open buffer so content is never silently dropped.
func (m *Machine) StreamEnded(author string) {
	m.flushLive(author)
	m.state = StateFinalized
}

func (m *Machine) flushLive(author string) {
	if m.live.Len() == 0 {
		return
	}
	if author == "" {
		author = m.author
	}
	p := Panel{Content: m.live.String(), Style: m.liveStyle}
	switch m.liveStyle {
	case StyleReasoning:
		p.Title = reasoningTitle(author)
	default:
		p.Title = responseTitle(author)
		p.Subtitle = m.subtitle
		m.subtitle = ""
	}
	m.live.Reset()
	m.liveStyle = StyleResponse
	m.sink.ClearLive()
	m.finalize(p)
}

func (m *Machine) finalize(p Panel) {
	m.panels = append(m.panels, p)
	m.sink.FinalizePanel(p)
	if m.live.Len() == 0 {
		m.state = StateFinalized
	}
}

// FormatUsage renders a usage summary as a panel subtitle. Absent fields are
// omitted entirely, never shown as zero.
func FormatUsage(u stream.UsageSummary) string {
	var parts []string
	if u.InputTokens != nil {
		parts = append(parts, fmt.Sprintf("in=%d", *u.InputTokens))
	}
	if u.OutputTokens != nil {
		parts = append(parts, fmt.Sprintf("out=%d", *u.OutputTokens))
	}
	if u.TotalTokens != nil {
		parts = append(parts, fmt.Sprintf("total=%d", *u.TotalTokens))
	}
	if u.ReasoningTokens != nil {
		parts = append(parts, fmt.Sprintf("reasoning=%d", *u.ReasoningTokens))
	}
	if len(parts) == 0 {
		return ""
	}
	return "tokens " + strings.Join(parts, " ")
}

func responseTitle(author string) string {
	return titled("Response", author)
}

func reasoningTitle(author string) string {
	return titled("Reasoning", author)
}

func titled(prefix, author string) string {
	if author == "" {
		return prefix
	}
	return prefix + " - " + author
}
