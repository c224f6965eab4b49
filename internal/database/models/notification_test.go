package models

import (
	"testing"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeNotifications(n int) []*types.Notification {
	notifications := make([]*types.Notification, n)
	for i := range notifications {
		notifications[i] = &types.Notification{UserID: int64(i + 1)}
	}

	return notifications
}

func TestChunkNotifications(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields no batches", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, chunkNotifications(nil, 500))
	})

	t.Run("input below batch size yields one batch", func(t *testing.T) {
		t.Parallel()

		batches := chunkNotifications(makeNotifications(3), 500)
		require.Len(t, batches, 1)
		assert.Len(t, batches[0], 3)
	})

	t.Run("input splits on batch boundary", func(t *testing.T) {
		t.Parallel()

		batches := chunkNotifications(makeNotifications(1001), 500)
		require.Len(t, batches, 3)
		assert.Len(t, batches[0], 500)
		assert.Len(t, batches[1], 500)
		assert.Len(t, batches[2], 1)
	})

	t.Run("exact multiple has no empty tail batch", func(t *testing.T) {
		t.Parallel()

		batches := chunkNotifications(makeNotifications(1000), 500)
		require.Len(t, batches, 2)
		assert.Len(t, batches[0], 500)
		assert.Len(t, batches[1], 500)
	})

	t.Run("non-positive size keeps everything in one batch", func(t *testing.T) {
		t.Parallel()

		batches := chunkNotifications(makeNotifications(7), 0)
		require.Len(t, batches, 1)
		assert.Len(t, batches[0], 7)
	})
}

func TestDedupeIDs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int64{3, 1, 2}, dedupeIDs([]int64{3, 1, 3, 2, 1}))
	assert.Empty(t, dedupeIDs([]int64{}))
	assert.Equal(t, []int64{5}, dedupeIDs([]int64{5, 5, 5}))
}
