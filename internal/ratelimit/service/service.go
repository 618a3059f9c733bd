// Package service checks per-IP budgets for the public auth forms.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dochub/internal/platform/metrics"
	"dochub/internal/ratelimit/models"
	"dochub/pkg/platform/audit"
	"dochub/pkg/requestcontext"
)

// BucketStore counts requests in a sliding window.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
	Reset(ctx context.Context, key string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Limiter applies one Limit per class.
type Limiter struct {
	store          BucketStore
	limits         map[models.Class]models.Limit
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
}

type Option func(*Limiter)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) { l.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Limiter) { l.metrics = m }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(l *Limiter) { l.auditPublisher = p }
}

// WithLimit overrides the limit for one class.
func WithLimit(class models.Class, limit models.Limit) Option {
	return func(l *Limiter) { l.limits[class] = limit }
}

func New(store BucketStore, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, errors.New("bucket store is required")
	}
	l := &Limiter{
		store:  store,
		limits: map[models.Class]models.Limit{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	for class, limit := range l.limits {
		if limit.Requests <= 0 || limit.Window <= 0 {
			return nil, errors.New("rate limit for " + string(class) + " must be positive")
		}
	}
	return l, nil
}

// Check counts one request from ip against class. Classes without a limit
// are always allowed.
func (l *Limiter) Check(ctx context.Context, class models.Class, ip string) (*models.Result, error) {
	limit, ok := l.limits[class]
	if !ok {
		return &models.Result{Allowed: true}, nil
	}
	result, err := l.store.Allow(ctx, models.Key(class, ip), limit.Requests, limit.Window)
	if err != nil {
		return nil, err
	}
	if !result.Allowed {
		l.metrics.IncrementRateLimited(string(class))
		l.logger.WarnContext(ctx, string(audit.EventRateLimitExceeded),
			"class", string(class),
			"retry_after", result.RetryAfter,
			"request_id", requestcontext.RequestID(ctx),
			"log_type", "audit",
		)
		if l.auditPublisher != nil {
			_ = l.auditPublisher.Emit(ctx, audit.Event{
				Action:  string(audit.EventRateLimitExceeded),
				Subject: string(class),
				IP:      ip,
			})
		}
	}
	return result, nil
}

// Reset clears ip's counter for class.
func (l *Limiter) Reset(ctx context.Context, class models.Class, ip string) error {
	return l.store.Reset(ctx, models.Key(class, ip))
}
