package audit

import (
	"context"
	"time"
)

// Publisher hands events to the background worker without blocking callers.
// When the inbox is full the event is dropped and ErrDropped returned.
type Publisher struct {
	inbox chan<- Event
	now   func() time.Time
}

func NewPublisher(inbox chan<- Event) *Publisher {
	return &Publisher{inbox: inbox, now: time.Now}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.inbox <- event:
		return nil
	default:
		return ErrDropped
	}
}
