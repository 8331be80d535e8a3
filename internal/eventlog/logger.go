package eventlog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"agentview/internal/display"
	"agentview/internal/source"
	"agentview/internal/stream"
)

// Logger appends structured debug entries to a local log file. A nil Logger
// is valid and does nothing, so call sites don't guard the debug flag.
type Logger struct {
	path string
	seq  atomic.Uint64
}

func New(path string) *Logger {
	return &Logger{path: path}
}

func (l *Logger) nextID() uint64 {
	return l.seq.Add(1)
}

// LogEvent records one raw event in its wire shape.
func (l *Logger) LogEvent(ev stream.RawEvent) {
	if l == nil {
		return
	}
	b, err := source.EncodeEvent(ev)
	if err != nil {
		return
	}
	label := "EVENT"
	if ev.Author != "" {
		label = fmt.Sprintf("%s %s", label, ev.Author)
	}
	l.append(label, fmt.Sprintf("Payload:\n%s", string(b)))
}

// LogPanel records one finalized panel.
func (l *Logger) LogPanel(p display.Panel) {
	if l == nil {
		return
	}
	entry := map[string]any{
		"style":   string(p.Style),
		"title":   p.Title,
		"content": p.Content,
	}
	if p.Subtitle != "" {
		entry["subtitle"] = p.Subtitle
	}
	b, _ := json.MarshalIndent(entry, "", "  ")
	l.append("PANEL", fmt.Sprintf("Payload:\n%s", string(b)))
}

func (l *Logger) append(label, body string) {
	if l == nil {
		return
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	id := l.nextID()
	ts := time.Now().Format(time.RFC3339)
	fmt.Fprintf(f, "\n===== %s #%d =====\nTime: %s\n%s\n", label, id, ts, body)
}

// Sink mirrors finalized panels into the logger; live updates are ignored.
func (l *Logger) Sink() display.Sink {
	return panelSink{l}
}

type panelSink struct {
	l *Logger
}

func (s panelSink) UpdateLive(content, title, subtitle string) {}
func (s panelSink) ClearLive()                                 {}
func (s panelSink) FinalizePanel(p display.Panel)              { s.l.LogPanel(p) }

// WrapSession logs each raw event before handing it to the inner session.
func WrapSession(inner source.Session, l *Logger) source.Session {
	if l == nil {
		return inner
	}
	return loggingSession{inner: inner, l: l}
}

type loggingSession struct {
	inner source.Session
	l     *Logger
}

func (s loggingSession) HandleEvent(ev stream.RawEvent) {
	s.l.LogEvent(ev)
	s.inner.HandleEvent(ev)
}

func (s loggingSession) Finish() {
	s.inner.Finish()
}
