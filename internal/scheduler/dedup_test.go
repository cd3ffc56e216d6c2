package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindhaven/sentinel/internal/scheduler"
)

func setupDedup(t *testing.T) (*scheduler.DedupCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return scheduler.NewDedupCache(client, 24*time.Hour, zap.NewNop()), mr
}

func TestDedupCache_FilterProcessed(t *testing.T) {
	t.Parallel()

	cache, _ := setupDedup(t)
	ctx := context.Background()

	// Nothing marked yet, everything passes through.
	assert.Equal(t, []string{"m1", "m2", "m3"}, cache.FilterProcessed(ctx, []string{"m1", "m2", "m3"}))

	cache.MarkProcessed(ctx, []string{"m1", "m3"})

	assert.Equal(t, []string{"m2"}, cache.FilterProcessed(ctx, []string{"m1", "m2", "m3"}))
}

func TestDedupCache_Empty(t *testing.T) {
	t.Parallel()

	cache, _ := setupDedup(t)

	assert.Empty(t, cache.FilterProcessed(context.Background(), nil))
}

func TestDedupCache_TTLExpiry(t *testing.T) {
	t.Parallel()

	cache, mr := setupDedup(t)
	ctx := context.Background()

	cache.MarkProcessed(ctx, []string{"m1"})
	assert.Empty(t, cache.FilterProcessed(ctx, []string{"m1"}))

	mr.FastForward(25 * time.Hour)

	assert.Equal(t, []string{"m1"}, cache.FilterProcessed(ctx, []string{"m1"}))
}

func TestDedupCache_IndependentInstances(t *testing.T) {
	t.Parallel()

	first, _ := setupDedup(t)
	second, _ := setupDedup(t)
	ctx := context.Background()

	first.MarkProcessed(ctx, []string{"m1"})

	// Separate backing stores never see each other's marks.
	assert.Empty(t, first.FilterProcessed(ctx, []string{"m1"}))
	assert.Equal(t, []string{"m1"}, second.FilterProcessed(ctx, []string{"m1"}))
}
