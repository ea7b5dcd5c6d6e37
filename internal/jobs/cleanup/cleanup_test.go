package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakePurger struct {
	cutoffs []time.Time
	purged  int64
	err     error
}

func (p *fakePurger) PurgeReviewedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	p.cutoffs = append(p.cutoffs, cutoff)
	return p.purged, p.err
}

func TestRunPurgesWithRetentionCutoff(t *testing.T) {
	purger := &fakePurger{purged: 3}
	job := NewReviewedRetentionJob(purger, 24*time.Hour, time.Hour, zap.NewNop())
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(purger.cutoffs) != 1 {
		t.Fatalf("purge calls = %d", len(purger.cutoffs))
	}
	if want := now.Add(-24 * time.Hour); !purger.cutoffs[0].Equal(want) {
		t.Fatalf("cutoff = %v, want %v", purger.cutoffs[0], want)
	}
}

func TestRunSurfacesPurgeError(t *testing.T) {
	purger := &fakePurger{err: errors.New("pool closed")}
	job := NewReviewedRetentionJob(purger, time.Hour, time.Hour, zap.NewNop())

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunWithoutPurgerIsNoop(t *testing.T) {
	job := NewReviewedRetentionJob(nil, time.Hour, time.Hour, nil)
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
}
