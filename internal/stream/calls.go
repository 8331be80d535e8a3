package stream

import "strings"

// DefaultCallKey keys fragments that omit their call id before any id has
// been seen in the turn. Accumulation still succeeds under this sentinel.
const DefaultCallKey = "default"

// Call is one fully reassembled function invocation.
type Call struct {
	ID        string
	Name      string
	Arguments string
	Author    string
}

type callEntry struct {
	name   string
	args   strings.Builder
	author string
}

// CallAccumulator reassembles function calls that arrive as fragments.
// Continuation fragments that omit their call id are matched to the most
// recently seen one; a key, once created, is never reassigned to a different
// logical call within the turn.
type CallAccumulator struct {
	entries map[string]*callEntry
	order   []string
	lastID  string
}

func NewCallAccumulator() *CallAccumulator {
	return &CallAccumulator{entries: make(map[string]*callEntry)}
}

// Observe folds one fragment into the accumulator. A non-empty name
// overwrites the entry's name; argument text is always appended, never
// replaced.
func (a *CallAccumulator) Observe(frag FunctionCallContent, author string) {
	id := frag.CallID
	switch {
	case id != "":
		a.lastID = id
	case a.lastID != "":
		id = a.lastID
	default:
		id = DefaultCallKey
	}

	entry, ok := a.entries[id]
	if !ok {
		entry = &callEntry{author: author}
		a.entries[id] = entry
		a.order = append(a.order, id)
	}
	if frag.Name != "" {
		entry.name = frag.Name
	}
	if frag.Arguments != "" {
		entry.args.WriteString(frag.Arguments)
	}
}

// DrainAll returns accumulated calls in first-seen order. Entries that never
// received a name are omitted: argument-only fragments do not form a
// displayable call.
func (a *CallAccumulator) DrainAll() []Call {
	calls := make([]Call, 0, len(a.order))
	for _, id := range a.order {
		entry := a.entries[id]
		if entry == nil || entry.name == "" {
			continue
		}
		calls = append(calls, Call{
			ID:        id,
			Name:      entry.name,
			Arguments: entry.args.String(),
			Author:    entry.author,
		})
	}
	return calls
}

// Clear drops every entry and resets call-id tracking. The owner calls this
// exactly once per usage signal; skipping it duplicates panels on the next
// turn.
func (a *CallAccumulator) Clear() {
	a.entries = make(map[string]*callEntry)
	a.order = a.order[:0]
	a.lastID = ""
}

// Len reports the number of in-flight entries.
func (a *CallAccumulator) Len() int {
	return len(a.entries)
}
