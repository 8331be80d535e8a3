package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/coder/websocket"

	"agentview/internal/stream"
)

// WebSocketSource streams events from an agent gateway. The prompt is sent
// as the opening message; the gateway answers with one JSON event per text
// message and closes the socket when the turn completes.
type WebSocketSource struct {
	url    string
	token  string
	prompt string

	mu  sync.Mutex
	err error
}

func NewWebSocketSource(url, token, prompt string) *WebSocketSource {
	return &WebSocketSource{url: url, token: token, prompt: prompt}
}

func (s *WebSocketSource) Events(ctx context.Context) <-chan stream.RawEvent {
	ch := make(chan stream.RawEvent)
	go s.run(ctx, ch)
	return ch
}

func (s *WebSocketSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *WebSocketSource) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *WebSocketSource) run(ctx context.Context, ch chan<- stream.RawEvent) {
	defer close(ch)

	opts := &websocket.DialOptions{}
	if s.token != "" {
		opts.HTTPHeader = http.Header{"Authorization": {"Bearer " + s.token}}
	}
	conn, _, err := websocket.Dial(ctx, s.url, opts)
	if err != nil {
		s.setErr(fmt.Errorf("dial gateway: %w", err))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	input, err := json.Marshal(map[string]string{"input": s.prompt})
	if err != nil {
		s.setErr(fmt.Errorf("encode prompt: %w", err))
		return
	}
	if err := conn.Write(ctx, websocket.MessageText, input); err != nil {
		s.setErr(fmt.Errorf("send prompt: %w", err))
		return
	}

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, io.EOF) {
				return
			}
			if ctx.Err() != nil {
				return
			}
			s.setErr(fmt.Errorf("read gateway: %w", err))
			return
		}
		if typ != websocket.MessageText {
			continue
		}
		ev, derr := DecodeEvent(data)
		if derr != nil {
			continue
		}
		select {
		case ch <- ev:
		case <-ctx.Done():
			return
		}
	}
}
