// Package cache mirrors derived per-user counters in Redis so the pull API
// can serve hot reads without hitting Postgres. The database remains the
// source of truth; every miss or error falls back to a recount.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// counterTTL bounds staleness when an invalidation is lost.
const counterTTL = 10 * time.Minute

// UnreadCounter caches per-user unread notification counts.
type UnreadCounter struct {
	client rueidis.Client
	logger *zap.Logger
}

// NewUnreadCounter creates a new unread counter cache.
func NewUnreadCounter(client rueidis.Client, logger *zap.Logger) *UnreadCounter {
	return &UnreadCounter{
		client: client,
		logger: logger.Named("unread_counter"),
	}
}

func counterKey(userID int64) string {
	return fmt.Sprintf("unread_count:%d", userID)
}

// Get returns the cached unread count for a user. The second return value is
// false on a miss or any Redis error; the caller then recounts from the
// database.
func (c *UnreadCounter) Get(ctx context.Context, userID int64) (int, bool) {
	resp := c.client.Do(ctx, c.client.B().Get().Key(counterKey(userID)).Build())

	count, err := resp.AsInt64()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			c.logger.Warn("Failed to read unread count from cache",
				zap.Int64("userID", userID),
				zap.Error(err))
		}

		return 0, false
	}

	return int(count), true
}

// Set stores a user's unread count with a TTL.
func (c *UnreadCounter) Set(ctx context.Context, userID int64, count int) {
	err := c.client.Do(ctx, c.client.B().Set().
		Key(counterKey(userID)).
		Value(strconv.Itoa(count)).
		Ex(counterTTL).
		Build()).Error()
	if err != nil {
		c.logger.Warn("Failed to store unread count in cache",
			zap.Int64("userID", userID),
			zap.Error(err))
	}
}

// Invalidate drops a user's cached unread count.
func (c *UnreadCounter) Invalidate(ctx context.Context, userID int64) {
	err := c.client.Do(ctx, c.client.B().Del().Key(counterKey(userID)).Build()).Error()
	if err != nil {
		c.logger.Warn("Failed to invalidate unread count in cache",
			zap.Int64("userID", userID),
			zap.Error(err))
	}
}
