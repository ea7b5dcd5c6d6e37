package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type reviewedPurger interface {
	PurgeReviewedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Job sweeps reviewed flagged messages that passed their retention window.
// Pending records stay until a moderator resolves them.
type Job struct {
	purger    reviewedPurger
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func NewReviewedRetentionJob(purger reviewedPurger, retention, interval time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		purger:    purger,
		retention: retention,
		interval:  interval,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.purger == nil {
		return nil
	}

	cutoff := j.now().Add(-j.retention)
	purged, err := j.purger.PurgeReviewedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge reviewed flagged messages: %w", err)
	}
	if purged > 0 {
		j.logger.Info("reviewed flagged messages purged", zap.Int64("purged", purged))
	}
	return nil
}

// Start runs the sweep immediately, then on every interval tick until ctx
// is cancelled.
func (j *Job) Start(ctx context.Context) {
	if err := j.Run(ctx); err != nil {
		j.logger.Warn("retention sweep failed", zap.Error(err))
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("retention sweep failed", zap.Error(err))
			}
		}
	}
}
