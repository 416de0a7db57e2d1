package caching

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheJSONRoundTrip(t *testing.T) {
	cache := NewMemoryCacheService()
	ctx := context.Background()

	type payload struct {
		Count int `json:"count"`
	}
	require.NoError(t, cache.SetJSON(ctx, MetricsKey("occupancy"), payload{Count: 7}, time.Minute))

	var out payload
	require.NoError(t, cache.GetJSON(ctx, MetricsKey("occupancy"), &out))
	assert.Equal(t, 7, out.Count)
}

func TestMemoryCacheMissingKey(t *testing.T) {
	cache := NewMemoryCacheService()

	var out int
	assert.ErrorIs(t, cache.GetJSON(context.Background(), MetricsKey("absent"), &out), ErrMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCacheService()
	ctx := context.Background()

	require.NoError(t, cache.SetJSON(ctx, MetricsKey("short"), 1, time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	var out int
	assert.ErrorIs(t, cache.GetJSON(ctx, MetricsKey("short"), &out), ErrMiss)
}

func TestMemoryCacheInvalidateMetricsKeepsOtherKeys(t *testing.T) {
	cache := NewMemoryCacheService()
	ctx := context.Background()

	require.NoError(t, cache.SetJSON(ctx, MetricsKey("rentroll", "2024-02"), 1, 0))
	require.NoError(t, cache.SetJSON(ctx, MetricsKey("pnl", "2024"), 2, 0))
	require.NoError(t, cache.SetJSON(ctx, keyPrefix+"token", "keep me", 0))

	require.NoError(t, cache.InvalidateMetrics(ctx))

	var out int
	assert.ErrorIs(t, cache.GetJSON(ctx, MetricsKey("rentroll", "2024-02"), &out), ErrMiss)
	assert.ErrorIs(t, cache.GetJSON(ctx, MetricsKey("pnl", "2024"), &out), ErrMiss)
	var kept string
	require.NoError(t, cache.GetJSON(ctx, keyPrefix+"token", &kept))
	assert.Equal(t, "keep me", kept)
}
