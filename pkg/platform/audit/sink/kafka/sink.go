// Package kafka forwards audit events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	audit "dochub/pkg/platform/audit"
	"dochub/pkg/platform/circuit"
)

// Producer publishes one keyed record.
type Producer interface {
	Produce(ctx context.Context, key, value []byte) error
}

// Sink serializes events as JSON keyed by user ID. Broker outages trip a
// circuit breaker; while it is open, failures are swallowed so the worker
// keeps feeding the other sinks.
type Sink struct {
	producer Producer
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func New(producer Producer, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{
		producer: producer,
		breaker:  circuit.New("audit-kafka", circuit.WithFailureThreshold(5), circuit.WithSuccessThreshold(2)),
		logger:   logger,
	}
}

func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	var key []byte
	if !event.UserID.IsNil() {
		key = []byte(event.UserID.String())
	}

	if err := s.producer.Produce(ctx, key, payload); err != nil {
		useFallback, change := s.breaker.RecordFailure()
		if change.Opened {
			s.logger.WarnContext(ctx, "audit kafka circuit opened", "breaker", s.breaker.Name(), "error", err)
		}
		if useFallback {
			return nil
		}
		return fmt.Errorf("produce audit event: %w", err)
	}
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "audit kafka circuit closed", "breaker", s.breaker.Name())
	}
	return nil
}
