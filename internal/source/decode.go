package source

import (
	"encoding/json"
	"fmt"

	"agentview/internal/stream"
)

// wireEvent is the JSON shape accepted from event logs and the gateway
// socket. All speculative field access happens here, once, at the boundary;
// the normalized stream.RawEvent never requires probing.
type wireEvent struct {
	Author     string        `json:"author,omitempty"`
	AuthorName string        `json:"author_name,omitempty"`
	ExecutorID string        `json:"executor_id,omitempty"`
	Text       string        `json:"text,omitempty"`
	Contents   []wireContent `json:"contents,omitempty"`
	Data       *wireEvent    `json:"data,omitempty"`
}

type wireContent struct {
	Type string `json:"type"`

	Text         string `json:"text,omitempty"`
	FinalSummary bool   `json:"final_summary,omitempty"`

	CallID    string `json:"call_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
	Result    string `json:"result,omitempty"`

	InputTokens      *int `json:"input_tokens,omitempty"`
	OutputTokens     *int `json:"output_tokens,omitempty"`
	TotalTokens      *int `json:"total_tokens,omitempty"`
	PromptTokens     *int `json:"prompt_tokens,omitempty"`
	CompletionTokens *int `json:"completion_tokens,omitempty"`

	OutputTokenDetails     *wireTokenDetails `json:"output_token_details,omitempty"`
	CompletionTokenDetails *wireTokenDetails `json:"completion_tokens_details,omitempty"`
}

type wireTokenDetails struct {
	ReasoningTokens *int `json:"reasoning_tokens,omitempty"`
}

// DecodeEvent maps one JSON event into the normalized RawEvent shape.
func DecodeEvent(data []byte) (stream.RawEvent, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return stream.RawEvent{}, fmt.Errorf("decode event: %w", err)
	}
	return w.toRaw(1), nil
}

// EncodeEvent renders a RawEvent back to its wire shape, one JSON object per
// line, so recorded streams can be replayed through FileSource.
func EncodeEvent(ev stream.RawEvent) ([]byte, error) {
	return json.Marshal(fromRaw(ev))
}

func fromRaw(ev stream.RawEvent) wireEvent {
	w := wireEvent{
		Author: ev.Author,
		Text:   ev.Text,
	}
	for _, item := range ev.Contents {
		w.Contents = append(w.Contents, fromItem(item))
	}
	if ev.Inner != nil {
		inner := fromRaw(*ev.Inner)
		w.Data = &inner
	}
	return w
}

func fromItem(item stream.ContentItem) wireContent {
	switch c := item.(type) {
	case stream.TextContent:
		return wireContent{Type: "text", Text: c.Text}
	case stream.ReasoningContent:
		return wireContent{Type: "reasoning", Text: c.Text, FinalSummary: c.FinalSummary}
	case stream.FunctionCallContent:
		return wireContent{Type: "function_call", CallID: c.CallID, Name: c.Name, Arguments: c.Arguments}
	case stream.FunctionResultContent:
		return wireContent{Type: "function_result", CallID: c.CallID, Result: c.Result}
	case stream.UsageContent:
		return wireContent{
			Type:                   "usage",
			InputTokens:            c.InputTokens,
			OutputTokens:           c.OutputTokens,
			TotalTokens:            c.TotalTokens,
			PromptTokens:           c.PromptTokens,
			CompletionTokens:       c.CompletionTokens,
			OutputTokenDetails:     fromDetails(c.OutputTokenDetails),
			CompletionTokenDetails: fromDetails(c.CompletionTokenDetails),
		}
	default:
		return wireContent{}
	}
}

func fromDetails(d *stream.TokenDetails) *wireTokenDetails {
	if d == nil {
		return nil
	}
	return &wireTokenDetails{ReasoningTokens: d.ReasoningTokens}
}

// toRaw converts with a bounded nesting depth: anything wrapped deeper than
// one level is dropped, which the classifier then treats as unrecognized.
func (w *wireEvent) toRaw(depth int) stream.RawEvent {
	ev := stream.RawEvent{
		Author: firstNonEmpty(w.AuthorName, w.Author, w.ExecutorID),
		Text:   w.Text,
	}
	for _, c := range w.Contents {
		if item := c.toItem(); item != nil {
			ev.Contents = append(ev.Contents, item)
		}
	}
	if w.Data != nil && depth > 0 {
		inner := w.Data.toRaw(depth - 1)
		ev.Inner = &inner
	}
	return ev
}

// toItem returns nil for unknown content types; unknown variants are
// skipped, never errors.
func (c *wireContent) toItem() stream.ContentItem {
	switch c.Type {
	case "text":
		return stream.TextContent{Text: c.Text}
	case "reasoning":
		return stream.ReasoningContent{Text: c.Text, FinalSummary: c.FinalSummary}
	case "function_call":
		return stream.FunctionCallContent{CallID: c.CallID, Name: c.Name, Arguments: c.Arguments}
	case "function_result":
		return stream.FunctionResultContent{CallID: c.CallID, Result: c.Result}
	case "usage":
		return stream.UsageContent{
			InputTokens:            c.InputTokens,
			OutputTokens:           c.OutputTokens,
			TotalTokens:            c.TotalTokens,
			PromptTokens:           c.PromptTokens,
			CompletionTokens:       c.CompletionTokens,
			OutputTokenDetails:     c.OutputTokenDetails.toDetails(),
			CompletionTokenDetails: c.CompletionTokenDetails.toDetails(),
		}
	default:
		return nil
	}
}

func (d *wireTokenDetails) toDetails() *stream.TokenDetails {
	if d == nil {
		return nil
	}
	return &stream.TokenDetails{ReasoningTokens: d.ReasoningTokens}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
