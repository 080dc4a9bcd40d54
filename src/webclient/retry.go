package webclient

import (
	"context"
	"time"
)

// AttemptFunc performs one request and reports its status, body and error.
type AttemptFunc func() (status int, body []byte, err error)

const maxRetryDelay = 30 * time.Second

// Transient reports whether a status/error pair is worth retrying: 429, 5xx, or a transport
// error that never produced a status.
func Transient(status int, err error) bool {
	if status == 429 || status >= 500 {
		return true
	}
	return err != nil && status == 0
}

// DoWithRetry runs fn up to attempts times, doubling the delay between transient failures.
// attempts <= 1 runs fn exactly once.
func DoWithRetry(ctx context.Context, attempts int, initialDelay time.Duration, fn AttemptFunc) (int, []byte, error) {
	if attempts <= 0 {
		attempts = 1
	}
	if initialDelay <= 0 {
		initialDelay = 2 * time.Second
	}
	delay := initialDelay
	for i := 0; ; i++ {
		status, body, err := fn()
		if !Transient(status, err) || i == attempts-1 {
			return status, body, err
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return status, body, ctx.Err()
		case <-t.C:
		}
		if delay < maxRetryDelay {
			delay *= 2
		}
	}
}
