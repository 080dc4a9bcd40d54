package summary

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const nameCachePrefix = "summarybot:name:"

// RedisNameCache stores display names in Redis with a TTL so nickname changes are picked up.
type RedisNameCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisNameCache returns nil when rdb is nil so callers can pass the result straight through.
func NewRedisNameCache(rdb *redis.Client, ttl time.Duration) NameCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisNameCache{rdb: rdb, ttl: ttl}
}

func nameKey(guildID, userID string) string {
	return nameCachePrefix + guildID + ":" + userID
}

// Get implements NameCache.
func (c *RedisNameCache) Get(ctx context.Context, guildID, userID string) (string, bool) {
	name, err := c.rdb.Get(ctx, nameKey(guildID, userID)).Result()
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// Set implements NameCache.
func (c *RedisNameCache) Set(ctx context.Context, guildID, userID, name string) {
	_ = c.rdb.Set(ctx, nameKey(guildID, userID), name, c.ttl).Err()
}
