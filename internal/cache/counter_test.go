package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/cache"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTest(t *testing.T) (*cache.UnreadCounter, *miniredis.Miniredis) {
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

	return cache.NewUnreadCounter(client, zap.NewNop()), mr
}

func TestGetMiss(t *testing.T) {
	t.Parallel()

	counter, _ := setupTest(t)

	count, ok := counter.Get(context.Background(), 1)
	assert.False(t, ok)
	assert.Equal(t, 0, count)
}

func TestSetGet(t *testing.T) {
	t.Parallel()

	counter, _ := setupTest(t)
	ctx := context.Background()

	counter.Set(ctx, 1, 7)

	count, ok := counter.Get(ctx, 1)
	assert.True(t, ok)
	assert.Equal(t, 7, count)

	// Counts are per user
	_, ok = counter.Get(ctx, 2)
	assert.False(t, ok)
}

func TestSetZero(t *testing.T) {
	t.Parallel()

	counter, _ := setupTest(t)
	ctx := context.Background()

	// A cached zero is a hit, not a miss
	counter.Set(ctx, 1, 0)

	count, ok := counter.Get(ctx, 1)
	assert.True(t, ok)
	assert.Equal(t, 0, count)
}

func TestInvalidate(t *testing.T) {
	t.Parallel()

	counter, _ := setupTest(t)
	ctx := context.Background()

	counter.Set(ctx, 1, 4)
	counter.Invalidate(ctx, 1)

	_, ok := counter.Get(ctx, 1)
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	t.Parallel()

	counter, mr := setupTest(t)
	ctx := context.Background()

	counter.Set(ctx, 1, 4)
	mr.FastForward(11 * time.Minute)

	_, ok := counter.Get(ctx, 1)
	assert.False(t, ok)
}
