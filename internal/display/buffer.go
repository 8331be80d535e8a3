package display

// BufferSink records sink operations in memory. Tests assert against it, and
// it doubles as the sink for non-interactive callers that only want the
// finalized panels.
type BufferSink struct {
	Live         string
	LiveTitle    string
	LiveSubtitle string
	LiveUpdates  int
	Clears       int
	Panels       []Panel
}

func (b *BufferSink) UpdateLive(content, title, subtitle string) {
	b.Live = content
	b.LiveTitle = title
	b.LiveSubtitle = subtitle
	b.LiveUpdates++
}

func (b *BufferSink) FinalizePanel(p Panel) {
	b.Panels = append(b.Panels, p)
}

func (b *BufferSink) ClearLive() {
	b.Live = ""
	b.LiveTitle = ""
	b.LiveSubtitle = ""
	b.Clears++
}
