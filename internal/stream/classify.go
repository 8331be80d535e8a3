package stream

// Kind is the canonical interpretation of one event.
type Kind int

const (
	KindNone Kind = iota
	KindText
	KindReasoning
	KindFunctionCall
	KindFunctionResult
	KindUsage
)

// Update is the normalized view of one raw event. Resolved is the first
// meaningful item by priority; Contents is the full ordered item list with
// final-summary recaps already removed.
type Update struct {
	Author   string
	Kind     Kind
	Resolved ContentItem
	Contents []ContentItem
}

// Classify normalizes one raw event. Events with no usable content of their
// own are unwrapped exactly one level; a doubly-nested event classifies to
// KindNone. KindNone is "no signal, continue", never an error.
func Classify(ev RawEvent) Update {
	return classify(ev, true)
}

func classify(ev RawEvent, unwrap bool) Update {
	items := displayable(ev.Contents)
	if len(items) == 0 && ev.Text == "" {
		if ev.Inner != nil && unwrap {
			inner := classify(*ev.Inner, false)
			if inner.Author == "" {
				inner.Author = ev.Author
			}
			return inner
		}
		return Update{Author: ev.Author}
	}
	if len(items) == 0 {
		items = []ContentItem{TextContent{Text: ev.Text}}
	}
	kind, resolved := resolve(items)
	return Update{Author: ev.Author, Kind: kind, Resolved: resolved, Contents: items}
}

// displayable drops reasoning recaps flagged as final summaries; their text
// duplicates deltas that already streamed.
func displayable(items []ContentItem) []ContentItem {
	kept := make([]ContentItem, 0, len(items))
	for _, item := range items {
		if r, ok := item.(ReasoningContent); ok && r.FinalSummary {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// resolve picks the canonical signal for an item list. Priority:
// Usage > FunctionCallFragment > FunctionResult > Reasoning > Text. Usage is
// a terminal marker that must never be masked by coincidental text in the
// same fragment, and an in-progress call outranks narration text so the
// tool-call display is never skipped.
func resolve(items []ContentItem) (Kind, ContentItem) {
	var call, result, reasoning, text ContentItem
	for _, item := range items {
		switch item.(type) {
		case UsageContent:
			return KindUsage, item
		case FunctionCallContent:
			if call == nil {
				call = item
			}
		case FunctionResultContent:
			if result == nil {
				result = item
			}
		case ReasoningContent:
			if reasoning == nil {
				reasoning = item
			}
		case TextContent:
			if text == nil {
				text = item
			}
		}
	}
	switch {
	case call != nil:
		return KindFunctionCall, call
	case result != nil:
		return KindFunctionResult, result
	case reasoning != nil:
		return KindReasoning, reasoning
	case text != nil:
		return KindText, text
	}
	return KindNone, nil
}
