// Package publisher queues audit events for the background worker.
package publisher

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	audit "dochub/pkg/platform/audit"
	"dochub/pkg/requestcontext"
)

const defaultBuffer = 256

// Publisher is a non-blocking front for the audit worker. A full buffer
// drops the event rather than stalling the request that emitted it.
type Publisher struct {
	mu      sync.RWMutex
	closed  bool
	inbox   chan audit.Event
	logger  *slog.Logger
	dropped prometheus.Counter
}

type Option func(*Publisher)

func WithBuffer(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.inbox = make(chan audit.Event, n)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithDropCounter counts events lost to a full buffer.
func WithDropCounter(c prometheus.Counter) Option {
	return func(p *Publisher) {
		p.dropped = c
	}
}

func New(opts ...Option) *Publisher {
	p := &Publisher{inbox: make(chan audit.Event, defaultBuffer), logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit enriches the event from the request context and queues it.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.IP == "" {
		event.IP = requestcontext.ClientIP(ctx)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil
	}
	select {
	case p.inbox <- event:
	default:
		if p.dropped != nil {
			p.dropped.Inc()
		}
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"request_id", event.RequestID,
		)
	}
	return nil
}

// Events is the channel the worker drains.
func (p *Publisher) Events() <-chan audit.Event {
	return p.inbox
}

// Close stops accepting events. The worker drains what is already queued.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.inbox)
}
