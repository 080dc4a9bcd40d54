package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a per-key cooldown between uses.
type Limiter interface {
	// Allow records a use of key when permitted; otherwise it reports how long to wait.
	Allow(ctx context.Context, key string) (bool, time.Duration)
}

// Memory is a process-local cooldown limiter.
type Memory struct {
	users map[string]time.Time
	mu    sync.Mutex
	limit time.Duration
	now   func() time.Time
}

// NewMemory returns a limiter allowing one use per key every limit.
func NewMemory(limit time.Duration) *Memory {
	return &Memory{
		users: make(map[string]time.Time),
		limit: limit,
		now:   time.Now,
	}
}

// Allow implements Limiter.
func (rl *Memory) Allow(_ context.Context, key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	lastUse, exists := rl.users[key]
	if !exists || now.Sub(lastUse) >= rl.limit {
		rl.users[key] = now
		return true, 0
	}
	return false, rl.limit - now.Sub(lastUse)
}

// Cleanup drops keys idle for more than twice the limit.
func (rl *Memory) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, lastUse := range rl.users {
		if now.Sub(lastUse) > rl.limit*2 {
			delete(rl.users, key)
		}
	}
}

// Unlimited never rejects.
type Unlimited struct{}

// Allow implements Limiter.
func (Unlimited) Allow(context.Context, string) (bool, time.Duration) { return true, 0 }
