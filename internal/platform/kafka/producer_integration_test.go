//go:build integration

package kafka_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"dochub/internal/platform/kafka"
	"dochub/pkg/testutil/containers"
)

type ProducerSuite struct {
	suite.Suite
	broker string
}

func TestProducerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ProducerSuite))
}

func (s *ProducerSuite) SetupSuite() {
	s.broker = containers.GetManager().GetRedpanda(s.T()).Broker
}

func (s *ProducerSuite) TestProduceIsConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, err := kafka.NewProducer(ctx, []string{s.broker}, "dochub.audit.test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)
	defer p.Close()

	s.Require().NoError(p.Health(ctx))
	s.Require().NoError(p.Produce(ctx, []byte("user-1"), []byte(`{"action":"login_succeeded"}`)))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.broker),
		kgo.ConsumeTopics("dochub.audit.test"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())
	records := fetches.Records()
	s.Require().NotEmpty(records)
	s.Equal("user-1", string(records[0].Key))
}

func (s *ProducerSuite) TestNoBrokersDisablesProducer() {
	p, err := kafka.NewProducer(context.Background(), nil, "unused", slog.Default())
	s.NoError(err)
	s.Nil(p)
}
