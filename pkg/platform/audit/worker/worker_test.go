package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	audit "dochub/pkg/platform/audit"
	"dochub/pkg/platform/audit/publisher"
	"dochub/pkg/platform/audit/store/memory"
)

type failingSink struct{ calls int }

func (f *failingSink) Append(context.Context, audit.Event) error {
	f.calls++
	return errors.New("broker down")
}

func TestWorker_DeliversToAllSinksAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	pub := publisher.New(publisher.WithBuffer(10))
	store := memory.NewInMemoryStore()
	broken := &failingSink{}
	w := NewWorker(pub.Events(), nil, broken, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for _, action := range []string{"a", "b", "c"} {
		require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: action}))
	}

	require.Eventually(t, func() bool {
		events, _ := store.ListRecent(context.Background(), 10)
		return len(events) == 3
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 3, broken.calls)
}

func TestWorker_ReturnsWhenInboxClosed(t *testing.T) {
	defer goleak.VerifyNone(t)

	pub := publisher.New(publisher.WithBuffer(10))
	store := memory.NewInMemoryStore()
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: "queued"}))
	pub.Close()

	err := NewWorker(pub.Events(), nil, store).Run(context.Background())
	require.NoError(t, err)

	events, err := store.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "queued", events[0].Action)
}
