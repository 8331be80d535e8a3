package display

// teeSink fans every sink operation out to multiple sinks, e.g. the console
// plus the transcript store.
type teeSink struct {
	sinks []Sink
}

func NewTee(sinks ...Sink) Sink {
	return &teeSink{sinks: sinks}
}

func (t *teeSink) UpdateLive(content, title, subtitle string) {
	for _, s := range t.sinks {
		s.UpdateLive(content, title, subtitle)
	}
}

func (t *teeSink) FinalizePanel(p Panel) {
	for _, s := range t.sinks {
		s.FinalizePanel(p)
	}
}

func (t *teeSink) ClearLive() {
	for _, s := range t.sinks {
		s.ClearLive()
	}
}
