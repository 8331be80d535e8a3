package stream

// ContentItem is one tagged fragment of an agent update. The variant set is
// closed; the classifier switches over every case.
type ContentItem interface{ isContent() }

// TextContent is a delta of final answer text.
type TextContent struct {
	Text string
}

// ReasoningContent is a delta of private reasoning text. FinalSummary marks
// a recap that duplicates already-streamed deltas and must be suppressed.
type ReasoningContent struct {
	Text         string
	FinalSummary bool
}

// FunctionCallContent is one fragment of an in-flight function call. Any of
// the fields may be empty: providers typically send the id and name on the
// first fragment only and stream arguments across the rest.
type FunctionCallContent struct {
	CallID    string
	Name      string
	Arguments string
}

// FunctionResultContent carries the outcome of a completed function call.
type FunctionResultContent struct {
	CallID string
	Result string
}

// UsageContent carries token counts as reported upstream. Providers disagree
// on field naming (input/output vs prompt/completion) and on where reasoning
// token detail nests, so both shapes are kept verbatim until ExtractUsage
// normalizes them.
type UsageContent struct {
	InputTokens  *int
	OutputTokens *int
	TotalTokens  *int

	PromptTokens     *int
	CompletionTokens *int

	OutputTokenDetails     *TokenDetails
	CompletionTokenDetails *TokenDetails
}

// TokenDetails is the nested detail block some providers attach to usage.
type TokenDetails struct {
	ReasoningTokens *int
}

func (TextContent) isContent()           {}
func (ReasoningContent) isContent()      {}
func (FunctionCallContent) isContent()   {}
func (FunctionResultContent) isContent() {}
func (UsageContent) isContent()          {}

// RawEvent is one unit from the upstream stream, populated once at the
// source boundary. Events may wrap one inner update; anything nested deeper
// is treated as unrecognized.
type RawEvent struct {
	Author   string
	Contents []ContentItem
	Text     string
	Inner    *RawEvent
}
