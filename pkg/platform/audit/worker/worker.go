package worker

import (
	"context"
	"log/slog"

	audit "dochub/pkg/platform/audit"
)

// Worker drains audit events into every configured sink. A failing sink is
// logged and skipped so one broken backend cannot stall the others.
type Worker struct {
	inbox  <-chan audit.Event
	sinks  []audit.Sink
	logger *slog.Logger
}

func NewWorker(inbox <-chan audit.Event, logger *slog.Logger, sinks ...audit.Sink) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{inbox: inbox, sinks: sinks, logger: logger}
}

// Run blocks until ctx is cancelled or the inbox is closed. On cancellation
// it flushes whatever is still buffered before returning.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain(context.WithoutCancel(ctx))
			return nil
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.deliver(ctx, event)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.inbox:
			if !ok {
				return
			}
			w.deliver(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) deliver(ctx context.Context, event audit.Event) {
	for _, sink := range w.sinks {
		if err := sink.Append(ctx, event); err != nil {
			w.logger.ErrorContext(ctx, "failed to deliver audit event",
				"error", err,
				"action", event.Action,
				"request_id", event.RequestID,
			)
		}
	}
}
