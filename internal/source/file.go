package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"agentview/internal/stream"
)

// FileSource replays a JSON-lines event log. With follow enabled it behaves
// like tail -f: on EOF it waits for the file to grow, woken by fsnotify,
// and keeps decoding appended lines until cancelled.
type FileSource struct {
	path   string
	follow bool

	mu  sync.Mutex
	err error
}

func NewFileSource(path string, follow bool) *FileSource {
	return &FileSource{path: path, follow: follow}
}

func (s *FileSource) Events(ctx context.Context) <-chan stream.RawEvent {
	ch := make(chan stream.RawEvent)
	go s.run(ctx, ch)
	return ch
}

func (s *FileSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *FileSource) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *FileSource) run(ctx context.Context, ch chan<- stream.RawEvent) {
	defer close(ch)

	f, err := os.Open(s.path)
	if err != nil {
		s.setErr(fmt.Errorf("open event log: %w", err))
		return
	}
	defer f.Close()

	var watcher *fsnotify.Watcher
	if s.follow {
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			s.setErr(fmt.Errorf("watch event log: %w", err))
			return
		}
		defer watcher.Close()
		if err := watcher.Add(s.path); err != nil {
			s.setErr(fmt.Errorf("watch event log: %w", err))
			return
		}
	}

	reader := bufio.NewReader(f)
	var pending string
	for {
		chunk, err := reader.ReadString('\n')
		line := pending + chunk
		pending = ""

		switch {
		case err == nil:
			if !s.emit(ctx, ch, line) {
				return
			}
			continue
		case errors.Is(err, io.EOF):
			if !s.follow {
				// Final unterminated line still counts.
				if !s.emit(ctx, ch, line) {
					return
				}
				return
			}
			// Keep the partial line until the writer finishes it.
			pending = line
		default:
			s.setErr(fmt.Errorf("read event log: %w", err))
			return
		}

		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
		case werr, ok := <-watcher.Errors:
			if ok && werr != nil {
				s.setErr(fmt.Errorf("watch event log: %w", werr))
			}
			return
		}
	}
}

// emit decodes and delivers one line; blank and undecodable lines are
// skipped. Returns false when the consumer is gone.
func (s *FileSource) emit(ctx context.Context, ch chan<- stream.RawEvent, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	ev, err := DecodeEvent([]byte(line))
	if err != nil {
		return true
	}
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
