package redis

import (
	"context"
	"testing"
	"time"
)

func TestIncrementWindowCountsWithinTTL(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	repo := NewRateRepo(client)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, ttl, err := repo.IncrementWindow(ctx, "admin_login_rate:ops@teeup.test", time.Minute)
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if count != want {
			t.Fatalf("count = %d, want %d", count, want)
		}
		if ttl <= 0 || ttl > time.Minute {
			t.Fatalf("ttl = %v", ttl)
		}
	}

	mr.FastForward(time.Minute + time.Second)

	count, _, err := repo.IncrementWindow(ctx, "admin_login_rate:ops@teeup.test", time.Minute)
	if err != nil {
		t.Fatalf("increment after expiry: %v", err)
	}
	if count != 1 {
		t.Fatalf("count after expiry = %d, want 1", count)
	}
}

func TestIncrementWindowValidatesInput(t *testing.T) {
	_, client := newMiniRedisClient(t)
	repo := NewRateRepo(client)

	if _, _, err := repo.IncrementWindow(context.Background(), "", time.Minute); err == nil {
		t.Fatal("expected error for empty key")
	}
	if _, _, err := repo.IncrementWindow(context.Background(), "k", 0); err == nil {
		t.Fatal("expected error for zero window")
	}
}
