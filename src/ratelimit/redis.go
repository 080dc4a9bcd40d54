package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "summarybot:cooldown:"

// Redis is a cooldown limiter shared by every bot instance pointing at the same Redis.
type Redis struct {
	rdb   *redis.Client
	limit time.Duration
}

// NewRedis returns a Redis-backed limiter.
func NewRedis(rdb *redis.Client, limit time.Duration) *Redis {
	return &Redis{rdb: rdb, limit: limit}
}

// Allow implements Limiter. Redis errors fail open so an outage never blocks the command.
func (r *Redis) Allow(ctx context.Context, key string) (bool, time.Duration) {
	k := keyPrefix + key
	ok, err := r.rdb.SetNX(ctx, k, time.Now().Unix(), r.limit).Result()
	if err != nil || ok {
		return true, 0
	}
	ttl, err := r.rdb.PTTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		return false, r.limit
	}
	return false, ttl
}

// New picks the limiter for a cooldown: none when zero, Redis when available, else in-memory.
func New(rdb *redis.Client, cooldown time.Duration) Limiter {
	switch {
	case cooldown <= 0:
		return Unlimited{}
	case rdb != nil:
		return NewRedis(rdb, cooldown)
	default:
		return NewMemory(cooldown)
	}
}
