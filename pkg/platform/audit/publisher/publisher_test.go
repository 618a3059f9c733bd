package publisher

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "dochub/pkg/domain"
	audit "dochub/pkg/platform/audit"
	"dochub/pkg/requestcontext"
)

func TestPublisher_EnrichesFromContext(t *testing.T) {
	pub := New(WithBuffer(1))
	defer pub.Close()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	ctx = requestcontext.WithClientMetadata(ctx, "10.0.0.7", "agent")

	require.NoError(t, pub.Emit(ctx, audit.Event{
		UserID: id.UserID(uuid.New()),
		Action: string(audit.EventLoginFailed),
	}))

	event := <-pub.Events()
	assert.Equal(t, now, event.Timestamp)
	assert.Equal(t, "req-1", event.RequestID)
	assert.Equal(t, "10.0.0.7", event.IP)
	assert.Equal(t, audit.CategorySecurity, event.Category)
}

func TestPublisher_DropsWhenFull(t *testing.T) {
	pub := New(WithBuffer(1))
	defer pub.Close()

	ctx := context.Background()
	require.NoError(t, pub.Emit(ctx, audit.Event{Action: "first"}))
	require.NoError(t, pub.Emit(ctx, audit.Event{Action: "second"}))

	assert.Len(t, pub.Events(), 1)
	assert.Equal(t, "first", (<-pub.Events()).Action)
}

func TestPublisher_EmitAfterCloseIsIgnored(t *testing.T) {
	pub := New()
	pub.Close()
	pub.Close()

	assert.NoError(t, pub.Emit(context.Background(), audit.Event{Action: "late"}))
}
