package rate

import (
	"context"
	"testing"
	"time"
)

type fakeWindowStore struct {
	counts map[string]int64
	ttl    time.Duration
}

func (s *fakeWindowStore) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[key]++
	return s.counts[key], s.ttl, nil
}

func TestAllowLoginWithinLimit(t *testing.T) {
	limiter := NewLimiter(&fakeWindowStore{ttl: 30 * time.Second}, 3)

	for i := 0; i < 3; i++ {
		retry, ok, err := limiter.AllowLogin(context.Background(), "ops@teeup.test")
		if err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
		if !ok || retry != 0 {
			t.Fatalf("attempt %d: ok=%v retry=%d", i, ok, retry)
		}
	}
}

func TestAllowLoginOverLimit(t *testing.T) {
	limiter := NewLimiter(&fakeWindowStore{ttl: 42 * time.Second}, 1)

	if _, ok, _ := limiter.AllowLogin(context.Background(), "ops@teeup.test"); !ok {
		t.Fatal("first attempt must pass")
	}
	retry, ok, err := limiter.AllowLogin(context.Background(), "ops@teeup.test")
	if err != nil {
		t.Fatalf("second attempt: %v", err)
	}
	if ok {
		t.Fatal("second attempt must be throttled")
	}
	if retry != 42 {
		t.Fatalf("retry = %d, want 42", retry)
	}
}

func TestAllowLoginNormalizesEmail(t *testing.T) {
	store := &fakeWindowStore{ttl: time.Second}
	limiter := NewLimiter(store, 1)

	_, _, _ = limiter.AllowLogin(context.Background(), " Ops@TeeUp.Test ")
	_, ok, _ := limiter.AllowLogin(context.Background(), "ops@teeup.test")
	if ok {
		t.Fatal("case variants must share one window")
	}
}

func TestZeroLimitDisablesThrottling(t *testing.T) {
	limiter := NewLimiter(&fakeWindowStore{}, 0)
	for i := 0; i < 100; i++ {
		if _, ok, _ := limiter.AllowLogin(context.Background(), "ops@teeup.test"); !ok {
			t.Fatal("throttling must be disabled")
		}
	}
}
