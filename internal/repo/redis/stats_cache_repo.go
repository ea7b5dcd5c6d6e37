package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Prometheus-P/tee-up-new/internal/domain/model"
)

const chatStatsKey = "admin:chat_stats"

// StatsCacheRepo keeps the admin chat dashboard counters warm so every
// page load does not hit four COUNT queries.
type StatsCacheRepo struct {
	client *goredis.Client
}

func NewStatsCacheRepo(client *goredis.Client) *StatsCacheRepo {
	return &StatsCacheRepo{client: client}
}

func (r *StatsCacheRepo) GetStats(ctx context.Context) (model.ChatStats, bool, error) {
	if r.client == nil {
		return model.ChatStats{}, false, fmt.Errorf("redis client is nil")
	}

	raw, err := r.client.Get(ctx, chatStatsKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return model.ChatStats{}, false, nil
		}
		return model.ChatStats{}, false, fmt.Errorf("get chat stats cache: %w", err)
	}

	var stats model.ChatStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		// stale or corrupt entry, treat as a miss
		_ = r.client.Del(ctx, chatStatsKey).Err()
		return model.ChatStats{}, false, nil
	}

	return stats, true, nil
}

func (r *StatsCacheRepo) SetStats(ctx context.Context, stats model.ChatStats, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if ttl <= 0 {
		ttl = time.Minute
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal chat stats: %w", err)
	}
	if err := r.client.Set(ctx, chatStatsKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("set chat stats cache: %w", err)
	}

	return nil
}

func (r *StatsCacheRepo) InvalidateStats(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, chatStatsKey).Err(); err != nil {
		return fmt.Errorf("invalidate chat stats cache: %w", err)
	}
	return nil
}
