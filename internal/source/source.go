package source

import (
	"context"

	"agentview/internal/stream"
)

// Source is a finite, single-consumer sequence of raw events. A new turn
// requires a new source; the sequence is not restartable. After the events
// channel closes, Err reports why the stream ended: nil for a natural end of
// stream, otherwise the upstream failure.
type Source interface {
	Events(ctx context.Context) <-chan stream.RawEvent
	Err() error
}

// Session is the slice of stream.Session the pump loop needs.
type Session interface {
	HandleEvent(stream.RawEvent)
	Finish()
}

// Consume drives one turn: events fold strictly in arrival order, the loop
// suspends between events, and Finish runs only on a clean end of stream.
// Cancellation or an upstream failure returns without flushing, discarding
// the turn's partially accumulated state.
func Consume(ctx context.Context, src Source, session Session) error {
	events := src.Events(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				if err := src.Err(); err != nil {
					return err
				}
				session.Finish()
				return nil
			}
			session.HandleEvent(ev)
		}
	}
}
