package stream

// UsageSummary is the normalized token-usage shape. Nil fields were absent
// upstream; they are never fabricated as zero.
type UsageSummary struct {
	InputTokens     *int
	OutputTokens    *int
	TotalTokens     *int
	ReasoningTokens *int
}

// Empty reports whether no field was populated.
func (u UsageSummary) Empty() bool {
	return u.InputTokens == nil && u.OutputTokens == nil &&
		u.TotalTokens == nil && u.ReasoningTokens == nil
}

// ExtractUsage normalizes a usage payload, preferring the input/output
// naming and falling back to prompt/completion. Reasoning token detail is
// taken from whichever nesting shape is populated first.
func ExtractUsage(c UsageContent) UsageSummary {
	s := UsageSummary{
		InputTokens:  firstInt(c.InputTokens, c.PromptTokens),
		OutputTokens: firstInt(c.OutputTokens, c.CompletionTokens),
		TotalTokens:  c.TotalTokens,
	}
	if d := c.OutputTokenDetails; d != nil && d.ReasoningTokens != nil {
		s.ReasoningTokens = d.ReasoningTokens
	} else if d := c.CompletionTokenDetails; d != nil {
		s.ReasoningTokens = d.ReasoningTokens
	}
	return s
}

func firstInt(vals ...*int) *int {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
