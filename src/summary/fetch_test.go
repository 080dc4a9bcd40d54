package summary

import (
	"context"
	"errors"
	"testing"
)

func TestFetchMessagesBatches(t *testing.T) {
	src := &fakeHistory{total: 1000}
	var progress []int
	res, err := FetchMessages(context.Background(), src, "chan", 250, func(remaining int) {
		progress = append(progress, remaining)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Messages) != 250 {
		t.Fatalf("collected %d messages, want 250", len(res.Messages))
	}
	if res.Batches != 3 || len(src.calls) != 3 {
		t.Fatalf("batches = %d, calls = %d, want 3", res.Batches, len(src.calls))
	}
	wantLimits := []int{100, 100, 50}
	wantBefore := []string{"", "901", "801"}
	for i, call := range src.calls {
		if call.limit != wantLimits[i] {
			t.Errorf("batch %d limit = %d, want %d", i, call.limit, wantLimits[i])
		}
		if call.before != wantBefore[i] {
			t.Errorf("batch %d before = %q, want %q", i, call.before, wantBefore[i])
		}
	}
	if len(progress) != 3 || progress[0] != 250 || progress[2] != 50 {
		t.Errorf("progress = %v", progress)
	}
	if res.Messages[0].ID != "1000" || res.Messages[249].ID != "751" {
		t.Errorf("messages not newest first: first %s last %s", res.Messages[0].ID, res.Messages[249].ID)
	}
}

func TestFetchMessagesStopsOnEmptyBatch(t *testing.T) {
	src := &fakeHistory{total: 120}
	res, err := FetchMessages(context.Background(), src, "chan", 500, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Messages) != 120 {
		t.Errorf("collected %d, want 120", len(res.Messages))
	}
	// 100, 20, then an empty batch ends the walk.
	if len(src.calls) != 3 {
		t.Errorf("calls = %d, want 3", len(src.calls))
	}
}

func TestFetchMessagesNeverExceedsLimit(t *testing.T) {
	for _, limit := range []int{1, 50, 99, 100, 101, 200, 1000, 2000} {
		src := &fakeHistory{total: 5000}
		res, err := FetchMessages(context.Background(), src, "chan", limit, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Messages) != limit {
			t.Errorf("limit %d: collected %d", limit, len(res.Messages))
		}
		if want := (limit + BatchSize - 1) / BatchSize; len(src.calls) != want {
			t.Errorf("limit %d: %d batches, want %d", limit, len(src.calls), want)
		}
	}
}

func TestFetchMessagesPropagatesError(t *testing.T) {
	boom := errors.New("missing access")
	src := &fakeHistory{total: 10, fail: boom}
	if _, err := FetchMessages(context.Background(), src, "chan", 50, nil); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if len(src.calls) != 1 {
		t.Errorf("fetch should not be retried, got %d calls", len(src.calls))
	}
}

func TestFetchMessagesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &fakeHistory{total: 10}
	if _, err := FetchMessages(ctx, src, "chan", 50, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
