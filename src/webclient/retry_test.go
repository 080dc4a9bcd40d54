package webclient

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoWithRetrySingleAttempt(t *testing.T) {
	calls := 0
	status, _, err := DoWithRetry(context.Background(), 1, time.Millisecond, func() (int, []byte, error) {
		calls++
		return 503, nil, errors.New("status 503")
	})
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if status != 503 || err == nil {
		t.Errorf("expected the failing attempt to be returned, got %d %v", status, err)
	}
}

func TestDoWithRetryRecovers(t *testing.T) {
	calls := 0
	status, body, err := DoWithRetry(context.Background(), 3, time.Millisecond, func() (int, []byte, error) {
		calls++
		if calls < 3 {
			return 429, nil, errors.New("status 429")
		}
		return 200, []byte("ok"), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 3 || status != 200 || string(body) != "ok" {
		t.Errorf("calls=%d status=%d body=%q", calls, status, body)
	}
}

func TestDoWithRetryDoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	status, _, _ := DoWithRetry(context.Background(), 5, time.Millisecond, func() (int, []byte, error) {
		calls++
		return 400, []byte("bad"), errors.New("status 400")
	})
	if calls != 1 || status != 400 {
		t.Errorf("calls=%d status=%d", calls, status)
	}
}

func TestDoWithRetryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := DoWithRetry(ctx, 3, time.Hour, func() (int, []byte, error) {
		return 500, nil, errors.New("status 500")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestTransient(t *testing.T) {
	cases := []struct {
		status int
		err    error
		want   bool
	}{
		{0, errors.New("connection reset"), true},
		{429, errors.New("status 429"), true},
		{502, nil, true},
		{400, errors.New("status 400"), false},
		{200, nil, false},
	}
	for _, tc := range cases {
		if got := Transient(tc.status, tc.err); got != tc.want {
			t.Errorf("Transient(%d, %v) = %v, want %v", tc.status, tc.err, got, tc.want)
		}
	}
}
