package source

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"agentview/internal/stream"
)

// ScriptSource synthesizes a complete multi-agent turn so the binary runs
// without a gateway: an orchestrator hands off to a specialist whose canned
// tools answer the prompt, with reasoning deltas, fragmented function-call
// arguments, results and usage markers. The event shapes match what a real
// gateway emits, nesting included.
type ScriptSource struct {
	prompt string
	delay  time.Duration
}

func NewScriptSource(prompt string) *ScriptSource {
	return &ScriptSource{prompt: prompt, delay: 40 * time.Millisecond}
}

// SetDelay overrides the pacing between events.
func (s *ScriptSource) SetDelay(d time.Duration) {
	s.delay = d
}

func (s *ScriptSource) Events(ctx context.Context) <-chan stream.RawEvent {
	ch := make(chan stream.RawEvent)
	go s.run(ctx, ch)
	return ch
}

// Err implements Source; a scripted turn cannot fail.
func (s *ScriptSource) Err() error {
	return nil
}

func (s *ScriptSource) run(ctx context.Context, ch chan<- stream.RawEvent) {
	defer close(ch)
	for _, ev := range buildScript(s.prompt) {
		if s.delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.delay):
			}
		}
		select {
		case ch <- ev:
		case <-ctx.Done():
			return
		}
	}
}

type specialist struct {
	name     string
	tool     string
	args     map[string]string
	result   string
	answer   string
	thinking string
}

func buildScript(prompt string) []stream.RawEvent {
	sp := routePrompt(prompt)

	var events []stream.RawEvent

	orchestrator := "orchestrator"
	events = append(events,
		reasoningEvent(orchestrator, "Looking at the request. "),
		reasoningEvent(orchestrator, "This belongs to the "+sp.name+". "),
		// Final-summary recap: duplicates the deltas above and must not
		// re-render.
		summaryEvent(orchestrator, "Routed the request to "+sp.name+"."),
	)
	handoffArgs := mustJSON(map[string]string{"agent": sp.name})
	events = append(events, callFragments(orchestrator, "call_handoff_1", "handoff_to_"+sp.name, handoffArgs)...)
	events = append(events,
		usageEvent(orchestrator, 54, 18),
		resultEvent(orchestrator, "call_handoff_1", "Handed off to "+sp.name),
	)

	events = append(events,
		reasoningEvent(sp.name, sp.thinking),
	)
	events = append(events, callFragments(sp.name, "call_tool_1", sp.tool, mustJSON(sp.args))...)
	events = append(events,
		usageEvent(sp.name, 210, 36),
		resultEvent(sp.name, "call_tool_1", sp.result),
	)
	for i, chunk := range chunkWords(sp.answer, 4) {
		ev := textEvent(sp.name, chunk)
		if i == 0 {
			// Some upstreams wrap the update one level deep; the
			// classifier unwraps it.
			ev = stream.RawEvent{Inner: &ev}
		}
		events = append(events, ev)
	}
	events = append(events, finalUsageEvent(sp.name, 318, 92, 410, 27))

	return events
}

func routePrompt(prompt string) specialist {
	p := strings.ToLower(prompt)
	switch {
	case containsAny(p, "sales", "customer", "inventory", "sql", "database", "orders"):
		return specialist{
			name:     "database_agent",
			tool:     "query_database",
			args:     map[string]string{"query": "SELECT * FROM sales_analytics"},
			result:   databaseResult(p),
			answer:   "Based on the query results, total sales reached $125,000 with Widget Pro as the top product across 450 orders. Let me know if you want a deeper breakdown.",
			thinking: "A database question. The query_database tool should cover it. ",
		}
	case containsAny(p, "api", "endpoint", "docs", "documentation", "setup", "install", "auth"):
		return specialist{
			name:     "document_agent",
			tool:     "search_documentation",
			args:     map[string]string{"query": prompt},
			result:   documentationResult(p),
			answer:   "The documentation covers this directly. **Summary**: authenticate with a Bearer token, then use the `/api/v1` endpoints described above.",
			thinking: "Documentation lookup. Searching the docs index. ",
		}
	case containsAny(p, "weather", "forecast", "temperature"):
		return specialist{
			name:     "weather_agent",
			tool:     "get_weather",
			args:     map[string]string{"location": prompt},
			result:   "The weather is sunny with a high of 72°F and light winds.",
			answer:   "It looks like a sunny day with a high of 72°F, so no umbrella needed.",
			thinking: "Weather request. Fetching the forecast. ",
		}
	default:
		return specialist{
			name:     "assistant_agent",
			tool:     "search_documentation",
			args:     map[string]string{"query": prompt},
			result:   "Documentation results: found 5 relevant articles covering implementation, best practices, and troubleshooting.",
			answer:   "I looked this up and found several relevant articles. The short version: follow the implementation guide first, then the troubleshooting notes if anything misbehaves.",
			thinking: "General question. Checking the knowledge base first. ",
		}
	}
}

func databaseResult(p string) string {
	switch {
	case strings.Contains(p, "sales"):
		return "Query Results: Total Sales: $125,000 | Top Product: Widget Pro | Orders: 450"
	case strings.Contains(p, "customer"):
		return "Query Results: Total Customers: 1,250 | Active: 980 | Churn Rate: 5.2%"
	case strings.Contains(p, "inventory"):
		return "Query Results: Items in Stock: 3,450 | Low Stock Alerts: 12 | Warehouse: 85% capacity"
	default:
		return "Query executed | Status: Success | Rows: 42"
	}
}

func documentationResult(p string) string {
	switch {
	case containsAny(p, "api", "endpoint"):
		return "API Documentation: Use /api/v1/customers for customer data. Authentication via Bearer token required."
	case containsAny(p, "setup", "install"):
		return "Setup Guide: 1) Install dependencies 2) Configure .env file 3) Run database migrations 4) Start server"
	case strings.Contains(p, "auth"):
		return "Auth Documentation: System uses JWT tokens. Login at /auth/login. Token expires in 24h."
	default:
		return "Documentation results: found 5 relevant articles covering implementation, best practices, and troubleshooting."
	}
}

// callFragments splits a call into the fragment pattern providers use: id
// and name on the first fragment, argument chunks with an empty id after.
func callFragments(author, callID, name, args string) []stream.RawEvent {
	events := []stream.RawEvent{{
		Author:   author,
		Contents: []stream.ContentItem{stream.FunctionCallContent{CallID: callID, Name: name}},
	}}
	for _, chunk := range chunkRunes(args, 8) {
		events = append(events, stream.RawEvent{
			Author:   author,
			Contents: []stream.ContentItem{stream.FunctionCallContent{Arguments: chunk}},
		})
	}
	return events
}

func textEvent(author, text string) stream.RawEvent {
	return stream.RawEvent{
		Author:   author,
		Contents: []stream.ContentItem{stream.TextContent{Text: text}},
	}
}

func reasoningEvent(author, text string) stream.RawEvent {
	return stream.RawEvent{
		Author:   author,
		Contents: []stream.ContentItem{stream.ReasoningContent{Text: text}},
	}
}

func summaryEvent(author, text string) stream.RawEvent {
	return stream.RawEvent{
		Author:   author,
		Contents: []stream.ContentItem{stream.ReasoningContent{Text: text, FinalSummary: true}},
	}
}

func resultEvent(author, callID, result string) stream.RawEvent {
	return stream.RawEvent{
		Author:   author,
		Contents: []stream.ContentItem{stream.FunctionResultContent{CallID: callID, Result: result}},
	}
}

func usageEvent(author string, input, output int) stream.RawEvent {
	return stream.RawEvent{
		Author: author,
		Contents: []stream.ContentItem{stream.UsageContent{
			InputTokens:  &input,
			OutputTokens: &output,
		}},
	}
}

// finalUsageEvent uses the prompt/completion naming so both conventions show
// up in a scripted run.
func finalUsageEvent(author string, prompt, completion, total, reasoning int) stream.RawEvent {
	return stream.RawEvent{
		Author: author,
		Contents: []stream.ContentItem{stream.UsageContent{
			PromptTokens:           &prompt,
			CompletionTokens:       &completion,
			TotalTokens:            &total,
			CompletionTokenDetails: &stream.TokenDetails{ReasoningTokens: &reasoning},
		}},
	}
}

func chunkWords(s string, perChunk int) []string {
	words := strings.Fields(s)
	var chunks []string
	for i := 0; i < len(words); i += perChunk {
		end := i + perChunk
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.Join(words[i:end], " ")
		if end < len(words) {
			chunk += " "
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func chunkRunes(s string, size int) []string {
	runes := []rune(s)
	var chunks []string
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func mustJSON(v map[string]string) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
