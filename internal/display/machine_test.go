package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentview/internal/stream"
)

func intp(v int) *int { return &v }

func TestMachineStatesAcrossOneTurn(t *testing.T) {
	sink := &BufferSink{}
	m := NewMachine(sink)
	assert.Equal(t, StateEmpty, m.State())

	m.AppendText("agent", "partial")
	assert.Equal(t, StateStreaming, m.State())
	assert.Equal(t, "partial", sink.Live)

	m.StreamEnded("agent")
	assert.Equal(t, StateFinalized, m.State())
	assert.Empty(t, sink.Live)
	require.Len(t, sink.Panels, 1)
	assert.Equal(t, "partial", sink.Panels[0].Content)
}

func TestMachineLiveIsLastWriteWins(t *testing.T) {
	sink := &BufferSink{}
	m := NewMachine(sink)

	m.AppendText("agent", "Hello ")
	m.AppendText("agent", "world")

	assert.Equal(t, "Hello world", sink.Live)
	assert.Equal(t, "Response - agent", sink.LiveTitle)
	assert.Equal(t, 2, sink.LiveUpdates)
	assert.Empty(t, sink.Panels)
}

func TestMachineUserPanelIsImmediate(t *testing.T) {
	sink := &BufferSink{}
	m := NewMachine(sink)

	m.User("what's the weather?")

	require.Len(t, sink.Panels, 1)
	assert.Equal(t, "User Message", sink.Panels[0].Title)
	assert.Equal(t, StyleUser, sink.Panels[0].Style)
}

func TestMachineReasoningFinalizesOnStyleSwitch(t *testing.T) {
	sink := &BufferSink{}
	m := NewMachine(sink)

	m.AppendReasoning("agent", "thinking")
	assert.Equal(t, "Reasoning - agent", sink.LiveTitle)

	m.EndReasoning("agent")
	m.AppendText("agent", "answer")

	require.Len(t, sink.Panels, 1)
	assert.Equal(t, StyleReasoning, sink.Panels[0].Style)
	assert.Equal(t, "thinking", sink.Panels[0].Content)
	assert.Equal(t, "answer", sink.Live)
}

func TestMachineAuthorChangeFlushesPreviousBuffer(t *testing.T) {
	sink := &BufferSink{}
	m := NewMachine(sink)

	m.AppendText("alpha", "alpha says")
	m.FlushLive("alpha")
	m.AppendText("beta", "beta says")
	m.StreamEnded("beta")

	require.Len(t, sink.Panels, 2)
	assert.Equal(t, "Response - alpha", sink.Panels[0].Title)
	assert.Equal(t, "Response - beta", sink.Panels[1].Title)
}

func TestMachineUsageFlushOrdering(t *testing.T) {
	sink := &BufferSink{}
	m := NewMachine(sink)

	m.AppendText("agent", "the answer")
	m.UsageFlush("agent", []stream.Call{
		{ID: "c1", Name: "lookup", Arguments: `{"q":1}`, Author: "agent"},
		{ID: "c2", Name: "fetch", Arguments: "{}", Author: "agent"},
	}, stream.UsageSummary{InputTokens: intp(10), OutputTokens: intp(5)})

	require.Len(t, sink.Panels, 3)
	assert.Equal(t, StyleCall, sink.Panels[0].Style)
	assert.Contains(t, sink.Panels[0].Content, "Calling: lookup")
	assert.Contains(t, sink.Panels[1].Content, "Calling: fetch")

	text := sink.Panels[2]
	assert.Equal(t, StyleResponse, text.Style)
	assert.Equal(t, "the answer", text.Content)
	assert.Equal(t, "tokens in=10 out=5", text.Subtitle)
}

func TestMachineUsageFlushWithoutOpenText(t *testing.T) {
	sink := &BufferSink{}
	m := NewMachine(sink)

	m.UsageFlush("agent", []stream.Call{{ID: "c1", Name: "handoff", Author: "agent"}},
		stream.UsageSummary{})

	// No empty text panel is fabricated.
	require.Len(t, sink.Panels, 1)
	assert.Equal(t, StyleCall, sink.Panels[0].Style)
}

func TestMachineUsageSubtitleDoesNotLeak(t *testing.T) {
	sink := &BufferSink{}
	m := NewMachine(sink)

	m.AppendText("agent", "first")
	m.UsageFlush("agent", nil, stream.UsageSummary{InputTokens: intp(3)})
	m.AppendText("agent", "second")
	m.StreamEnded("agent")

	require.Len(t, sink.Panels, 2)
	assert.Equal(t, "tokens in=3", sink.Panels[0].Subtitle)
	assert.Empty(t, sink.Panels[1].Subtitle)
}

func TestMachineFunctionResultNeverLive(t *testing.T) {
	sink := &BufferSink{}
	m := NewMachine(sink)

	m.FunctionResult("agent", stream.FunctionResultContent{CallID: "c1", Result: "ok"})

	assert.Zero(t, sink.LiveUpdates)
	require.Len(t, sink.Panels, 1)
	assert.Equal(t, "Function Result - agent", sink.Panels[0].Title)
	assert.Equal(t, StyleResult, sink.Panels[0].Style)
}

func TestFormatUsage(t *testing.T) {
	assert.Equal(t, "", FormatUsage(stream.UsageSummary{}))
	assert.Equal(t, "tokens in=10 out=5 total=15 reasoning=2", FormatUsage(stream.UsageSummary{
		InputTokens:     intp(10),
		OutputTokens:    intp(5),
		TotalTokens:     intp(15),
		ReasoningTokens: intp(2),
	}))
	assert.Equal(t, "tokens out=7", FormatUsage(stream.UsageSummary{OutputTokens: intp(7)}))
}

func TestTeeFansOut(t *testing.T) {
	a, b := &BufferSink{}, &BufferSink{}
	tee := NewTee(a, b)

	tee.UpdateLive("live", "t", "")
	tee.FinalizePanel(Panel{Title: "p"})
	tee.ClearLive()

	assert.Equal(t, 1, a.LiveUpdates)
	assert.Equal(t, 1, b.LiveUpdates)
	assert.Len(t, a.Panels, 1)
	assert.Len(t, b.Panels, 1)
	assert.Equal(t, 1, a.Clears)
	assert.Equal(t, 1, b.Clears)
}
