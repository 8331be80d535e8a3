package eventlog

import (
	"fmt"
	"os"
	"sync"

	"agentview/internal/source"
	"agentview/internal/stream"
)

// Recorder appends raw events as JSON lines, producing files that FileSource
// can replay.
type Recorder struct {
	mu sync.Mutex
	f  *os.File
}

func NewRecorder(path string) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	return &Recorder{f: f}, nil
}

func (r *Recorder) Record(ev stream.RawEvent) error {
	b, err := source.EncodeEvent(ev)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err = fmt.Fprintf(r.f, "%s\n", b)
	return err
}

func (r *Recorder) Close() error {
	return r.f.Close()
}

// WrapRecording records each raw event before handing it to the inner
// session. Write failures are ignored so recording never breaks a turn.
func WrapRecording(inner source.Session, r *Recorder) source.Session {
	if r == nil {
		return inner
	}
	return recordingSession{inner: inner, r: r}
}

type recordingSession struct {
	inner source.Session
	r     *Recorder
}

func (s recordingSession) HandleEvent(ev stream.RawEvent) {
	_ = s.r.Record(ev)
	s.inner.HandleEvent(ev)
}

func (s recordingSession) Finish() {
	s.inner.Finish()
}
