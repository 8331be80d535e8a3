package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestClassifyPriorityOrder(t *testing.T) {
	ev := RawEvent{
		Author: "agent",
		Contents: []ContentItem{
			TextContent{Text: "narration"},
			ReasoningContent{Text: "thinking"},
			FunctionCallContent{CallID: "c1", Name: "lookup"},
		},
	}

	u := Classify(ev)
	assert.Equal(t, KindFunctionCall, u.Kind)
	require.IsType(t, FunctionCallContent{}, u.Resolved)
	assert.Equal(t, "lookup", u.Resolved.(FunctionCallContent).Name)
	assert.Len(t, u.Contents, 3)
}

func TestClassifyUsageMasksEverything(t *testing.T) {
	ev := RawEvent{
		Author: "agent",
		Contents: []ContentItem{
			FunctionCallContent{CallID: "c1", Name: "lookup"},
			UsageContent{InputTokens: intp(10)},
		},
	}

	u := Classify(ev)
	assert.Equal(t, KindUsage, u.Kind)
	require.IsType(t, UsageContent{}, u.Resolved)
}

func TestClassifyDirectTextField(t *testing.T) {
	u := Classify(RawEvent{Author: "agent", Text: "hello"})
	assert.Equal(t, KindText, u.Kind)
	assert.Equal(t, TextContent{Text: "hello"}, u.Resolved)
}

func TestClassifyUnwrapsOneLevel(t *testing.T) {
	inner := RawEvent{
		Author:   "specialist",
		Contents: []ContentItem{TextContent{Text: "answer"}},
	}
	u := Classify(RawEvent{Author: "wrapper", Inner: &inner})

	assert.Equal(t, KindText, u.Kind)
	assert.Equal(t, "specialist", u.Author)
}

func TestClassifyUnwrapInheritsOuterAuthor(t *testing.T) {
	inner := RawEvent{Contents: []ContentItem{TextContent{Text: "answer"}}}
	u := Classify(RawEvent{Author: "outer", Inner: &inner})

	assert.Equal(t, KindText, u.Kind)
	assert.Equal(t, "outer", u.Author)
}

func TestClassifyDoubleNestingIsNone(t *testing.T) {
	innermost := RawEvent{Contents: []ContentItem{TextContent{Text: "deep"}}}
	inner := RawEvent{Inner: &innermost}
	u := Classify(RawEvent{Author: "outer", Inner: &inner})

	assert.Equal(t, KindNone, u.Kind)
	assert.Nil(t, u.Resolved)
}

func TestClassifySuppressesFinalSummary(t *testing.T) {
	ev := RawEvent{
		Author: "agent",
		Contents: []ContentItem{
			ReasoningContent{Text: "recap of everything", FinalSummary: true},
		},
	}

	u := Classify(ev)
	assert.Equal(t, KindNone, u.Kind)
	assert.Empty(t, u.Contents)
}

func TestClassifyKeepsDeltaDropsSummary(t *testing.T) {
	ev := RawEvent{
		Author: "agent",
		Contents: []ContentItem{
			ReasoningContent{Text: "delta"},
			ReasoningContent{Text: "recap", FinalSummary: true},
		},
	}

	u := Classify(ev)
	assert.Equal(t, KindReasoning, u.Kind)
	require.Len(t, u.Contents, 1)
	assert.Equal(t, "delta", u.Contents[0].(ReasoningContent).Text)
}

func TestClassifyEmptyEventIsNone(t *testing.T) {
	u := Classify(RawEvent{Author: "agent"})
	assert.Equal(t, KindNone, u.Kind)
	assert.Equal(t, "agent", u.Author)
}
