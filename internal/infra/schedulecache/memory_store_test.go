package schedulecache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/nap-planner/internal/domain/napschedule"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	schedule := napschedule.Schedule{NightSleepDuration: 720, IdealWakeWindow: 135}

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", schedule, 0))
	got, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, schedule, got)
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore()
	clock := time.Date(2024, time.March, 4, 7, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", napschedule.Schedule{}, time.Minute))
	clock = clock.Add(2 * time.Minute)

	_, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "b", napschedule.Schedule{}, time.Minute))
	require.Equal(t, 1, store.Len())
}

func TestMemoryStoreIgnoresEmptyKey(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "", napschedule.Schedule{}, 0))
	require.Zero(t, store.Len())
}
