package stream

// Presenter receives the normalized display signals a Session produces.
// display.Machine is the production implementation.
type Presenter interface {
	// AppendText appends a delta of final answer text to the live buffer.
	AppendText(author, delta string)
	// AppendReasoning appends a delta of reasoning text to the live buffer.
	AppendReasoning(author, delta string)
	// FlushLive finalizes whatever the live buffer holds for the previous
	// speaker before content from a new one accumulates.
	FlushLive(author string)
	// EndReasoning finalizes the reasoning buffer when the final answer
	// starts streaming.
	EndReasoning(author string)
	// FunctionResult emits an already-finalized result panel.
	FunctionResult(author string, res FunctionResultContent)
	// UsageFlush emits the drained calls in first-seen order and then
	// finalizes the open text buffer with the usage summary.
	UsageFlush(author string, calls []Call, usage UsageSummary)
	// StreamEnded flushes any still-open buffer at natural end of stream.
	StreamEnded(author string)
}

// authorTracker detects executor/author transitions. A transition fires only
// for a non-empty author that differs from the tracked one.
type authorTracker struct {
	current string
}

func (t *authorTracker) Observe(author string) (prev string, flushPrevious bool) {
	if author == "" || author == t.current {
		return "", false
	}
	prev = t.current
	t.current = author
	return prev, prev != ""
}

// reasoningTracker is the two-state flag separating private reasoning from
// final answer streaming.
type reasoningTracker struct {
	active bool
}

func (t *reasoningTracker) OnReasoning() {
	t.active = true
}

// OnText reports whether an open reasoning buffer must be finalized before
// the answer text begins.
func (t *reasoningTracker) OnText() (endReasoning bool) {
	if !t.active {
		return false
	}
	t.active = false
	return true
}

func (t *reasoningTracker) Reset() {
	t.active = false
}

// Session holds all mutable state for one user turn: the call accumulator,
// the author and reasoning trackers, and the last captured usage summary.
// It is owned exclusively by the consuming loop; no two events are folded
// concurrently and no state leaks into globals.
type Session struct {
	presenter Presenter
	calls     *CallAccumulator
	author    authorTracker
	reasoning reasoningTracker
	lastUsage UsageSummary
	sawUsage  bool
}

func NewSession(p Presenter) *Session {
	return &Session{presenter: p, calls: NewCallAccumulator()}
}

// Author returns the currently tracked speaker.
func (s *Session) Author() string {
	return s.author.current
}

// LastUsage returns the most recent usage summary observed this turn.
func (s *Session) LastUsage() (UsageSummary, bool) {
	return s.lastUsage, s.sawUsage
}

// HandleEvent folds one raw event into the session. Events classify to one
// canonical kind; coincidental lower-priority items in the same fragment are
// masked, matching the classifier's priority order.
func (s *Session) HandleEvent(ev RawEvent) {
	u := Classify(ev)
	if prev, flush := s.author.Observe(u.Author); flush {
		s.presenter.FlushLive(prev)
		s.reasoning.Reset()
	}
	author := s.author.current

	switch u.Kind {
	case KindNone:
		return

	case KindUsage:
		// Usage terminates the upstream LLM stream: drain and clear the
		// accumulator exactly once, then let the presenter emit call
		// panels ahead of the finalized text panel.
		usage := ExtractUsage(u.Resolved.(UsageContent))
		s.lastUsage = usage
		s.sawUsage = true
		calls := s.calls.DrainAll()
		s.calls.Clear()
		s.presenter.UsageFlush(author, calls, usage)

	case KindFunctionCall:
		for _, item := range u.Contents {
			if frag, ok := item.(FunctionCallContent); ok {
				s.calls.Observe(frag, author)
			}
		}

	case KindFunctionResult:
		for _, item := range u.Contents {
			if res, ok := item.(FunctionResultContent); ok && res.Result != "" {
				s.presenter.FunctionResult(author, res)
			}
		}

	case KindReasoning:
		for _, item := range u.Contents {
			if r, ok := item.(ReasoningContent); ok && r.Text != "" {
				s.reasoning.OnReasoning()
				s.presenter.AppendReasoning(author, r.Text)
			}
		}

	case KindText:
		for _, item := range u.Contents {
			t, ok := item.(TextContent)
			if !ok || t.Text == "" {
				continue
			}
			if s.reasoning.OnText() {
				s.presenter.EndReasoning(author)
			}
			s.presenter.AppendText(author, t.Text)
		}
	}
}

// Finish flushes any still-open buffer. Call it only on natural end of
// stream; an abandoned turn must never finalize partial content.
func (s *Session) Finish() {
	s.presenter.StreamEnded(s.author.current)
}
