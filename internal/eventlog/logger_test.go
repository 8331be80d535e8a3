package eventlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentview/internal/display"
	"agentview/internal/source"
	"agentview/internal/stream"
)

func TestLoggerAppendsLabeledEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	l := New(path)

	l.LogEvent(stream.RawEvent{
		Author:   "agent",
		Contents: []stream.ContentItem{stream.TextContent{Text: "hi"}},
	})
	l.LogPanel(display.Panel{Title: "Response - agent", Content: "hi", Style: display.StyleResponse})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "===== EVENT agent #1 =====")
	assert.Contains(t, text, "===== PANEL #2 =====")
	assert.Contains(t, text, `"type":"text"`)
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.LogEvent(stream.RawEvent{Author: "agent"})
	l.LogPanel(display.Panel{})
}

func TestRecorderOutputReplays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turn.jsonl")
	r, err := NewRecorder(path)
	require.NoError(t, err)

	events := []stream.RawEvent{
		{Author: "a", Contents: []stream.ContentItem{stream.TextContent{Text: "one"}}},
		{Author: "a", Contents: []stream.ContentItem{stream.TextContent{Text: "two"}}},
	}
	for _, ev := range events {
		require.NoError(t, r.Record(ev))
	}
	require.NoError(t, r.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	for i, line := range lines {
		decoded, err := source.DecodeEvent([]byte(line))
		require.NoError(t, err)
		assert.Equal(t, events[i], decoded)
	}
}
