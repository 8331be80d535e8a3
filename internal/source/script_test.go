package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentview/internal/stream"
)

func TestScriptRoutesByPromptKeywords(t *testing.T) {
	cases := map[string]string{
		"show me the sales numbers":     "database_agent",
		"where are the api docs":        "document_agent",
		"what's the weather in london":  "weather_agent",
		"tell me something interesting": "assistant_agent",
	}
	for prompt, want := range cases {
		sp := routePrompt(prompt)
		assert.Equal(t, want, sp.name, "prompt %q", prompt)
	}
}

func TestScriptShape(t *testing.T) {
	events := buildScript("weather tomorrow")
	require.NotEmpty(t, events)

	var sawNested, sawSummary, sawResult bool
	var usageCount int
	for _, ev := range events {
		if ev.Inner != nil {
			sawNested = true
		}
		for _, item := range ev.Contents {
			switch c := item.(type) {
			case stream.ReasoningContent:
				if c.FinalSummary {
					sawSummary = true
				}
			case stream.FunctionResultContent:
				sawResult = true
			case stream.UsageContent:
				usageCount++
			}
		}
	}

	assert.True(t, sawNested, "script should include a nested event")
	assert.True(t, sawSummary, "script should include a final-summary recap")
	assert.True(t, sawResult, "script should include a function result")
	assert.Equal(t, 3, usageCount)

	// The turn ends on a usage marker.
	last := events[len(events)-1]
	require.Len(t, last.Contents, 1)
	assert.IsType(t, stream.UsageContent{}, last.Contents[0])
}

func TestScriptCallFragmentsSplitIDAndArguments(t *testing.T) {
	frags := callFragments("agent", "c1", "lookup", `{"query":"sales"}`)
	require.NotEmpty(t, frags)

	first := frags[0].Contents[0].(stream.FunctionCallContent)
	assert.Equal(t, "c1", first.CallID)
	assert.Equal(t, "lookup", first.Name)
	assert.Empty(t, first.Arguments)

	var args string
	for _, ev := range frags[1:] {
		frag := ev.Contents[0].(stream.FunctionCallContent)
		assert.Empty(t, frag.CallID)
		args += frag.Arguments
	}
	assert.Equal(t, `{"query":"sales"}`, args)
}

func TestScriptSourceDrivesSessionToCompletion(t *testing.T) {
	src := NewScriptSource("query the orders database")
	src.SetDelay(0)

	session := &collectingSession{}
	err := Consume(context.Background(), src, session)
	require.NoError(t, err)
	assert.True(t, session.finished)
	assert.Equal(t, len(buildScript("query the orders database")), len(session.events))
}
