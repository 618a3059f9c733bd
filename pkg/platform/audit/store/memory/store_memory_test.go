package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "dochub/pkg/platform/audit"
)

func TestListRecent_NewestFirstWithLimit(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, action := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, store.Append(ctx, audit.Event{
			Action:    action,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	events, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "newest", events[0].Action)
	assert.Equal(t, "middle", events[1].Action)
}

func TestAppend_BoundedCapacity(t *testing.T) {
	store := NewInMemoryStore()
	store.capacity = 2
	ctx := context.Background()

	for _, action := range []string{"a", "b", "c"} {
		require.NoError(t, store.Append(ctx, audit.Event{Action: action}))
	}

	events, err := store.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.ElementsMatch(t, []string{"b", "c"}, []string{events[0].Action, events[1].Action})
}
