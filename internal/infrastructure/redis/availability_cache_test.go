package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityCache_SetGet(t *testing.T) {
	client := newTestClient(t)
	cache := NewAvailabilityCache(client)
	ctx := context.Background()

	slots := []OccupiedSlot{
		{StartTime: "10:00", EndTime: "11:00", Status: "confirmed"},
		{StartTime: "18:00", EndTime: "19:00", Status: "pending"},
	}
	require.NoError(t, cache.Set(ctx, "futsal", "2026-07-15", slots, time.Minute))

	got, err := cache.Get(ctx, "futsal", "2026-07-15")
	require.NoError(t, err)
	assert.Equal(t, slots, got)
}

func TestAvailabilityCache_Miss(t *testing.T) {
	client := newTestClient(t)
	cache := NewAvailabilityCache(client)

	_, err := cache.Get(context.Background(), "futsal", "2026-07-16")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestAvailabilityCache_Invalidate(t *testing.T) {
	client := newTestClient(t)
	cache := NewAvailabilityCache(client)
	ctx := context.Background()

	slots := []OccupiedSlot{{StartTime: "10:00", EndTime: "11:00", Status: "confirmed"}}
	require.NoError(t, cache.Set(ctx, "futsal", "2026-07-15", slots, time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "futsal", "2026-07-15"))

	_, err := cache.Get(ctx, "futsal", "2026-07-15")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestAvailabilityCache_EmptySlots(t *testing.T) {
	client := newTestClient(t)
	cache := NewAvailabilityCache(client)
	ctx := context.Background()

	// 占有なしの空リストもキャッシュミスとは区別して保存される
	require.NoError(t, cache.Set(ctx, "tennis-1", "2026-07-15", []OccupiedSlot{}, time.Minute))

	got, err := cache.Get(ctx, "tennis-1", "2026-07-15")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAvailabilityCache_TTLExpiry(t *testing.T) {
	client := newTestClient(t)
	cache := NewAvailabilityCache(client)
	ctx := context.Background()

	slots := []OccupiedSlot{{StartTime: "10:00", EndTime: "11:00", Status: "confirmed"}}
	require.NoError(t, cache.Set(ctx, "futsal", "2026-07-15", slots, 50*time.Millisecond))

	time.Sleep(100 * time.Millisecond)

	_, err := cache.Get(ctx, "futsal", "2026-07-15")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
