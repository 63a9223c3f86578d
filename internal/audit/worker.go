package audit

import (
	"context"
	"errors"
	"log/slog"
)

// ErrDropped reports an event that could not be queued.
var ErrDropped = errors.New("audit inbox full, event dropped")

// Worker consumes audit events from a channel and persists them. A failed
// append is logged and the worker keeps going.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run blocks until ctx is cancelled or the inbox is closed. Events still
// buffered at shutdown are drained before returning.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return nil
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.append(ctx, event)
		}
	}
}

func (w *Worker) drain() {
	ctx := context.Background()
	for {
		select {
		case event, ok := <-w.inbox:
			if !ok {
				return
			}
			w.append(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) append(ctx context.Context, event Event) {
	if err := w.store.Append(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "failed to persist audit event",
			"action", event.Action,
			"project_id", event.ProjectID,
			"error", err,
		)
	}
}
