package chatrooms

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Prometheus-P/tee-up-new/internal/domain/enums"
	"github.com/Prometheus-P/tee-up-new/internal/domain/model"
)

type RoomStore interface {
	ListRooms(ctx context.Context) ([]model.ChatRoom, error)
	Stats(ctx context.Context) (model.ChatStats, error)
	UpdateStatus(ctx context.Context, roomID string, status enums.RoomStatus) error
}

type StatsCache interface {
	GetStats(ctx context.Context) (model.ChatStats, bool, error)
	SetStats(ctx context.Context, stats model.ChatStats, ttl time.Duration) error
	InvalidateStats(ctx context.Context) error
}

type Config struct {
	StatsCacheTTL time.Duration
}

// Service gives admins read access to chat rooms plus the one mutation they
// have: flipping a room's status. Stats are aggregate counts over several
// tables, so they go through a short-lived cache; any status change
// invalidates it because the active/matched breakdown may have shifted.
type Service struct {
	store    RoomStore
	cache    StatsCache
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewService(store RoomStore, cfg Config, log *zap.Logger) *Service {
	ttl := cfg.StatsCacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		store:    store,
		cacheTTL: ttl,
		log:      log,
	}
}

func (s *Service) AttachCache(cache StatsCache) {
	s.cache = cache
}

func (s *Service) Rooms(ctx context.Context) ([]model.ChatRoom, error) {
	if s.store == nil {
		return nil, fmt.Errorf("chat room store is nil")
	}

	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chat rooms: %w", err)
	}
	return rooms, nil
}

// Stats returns aggregate room counts, served from cache when fresh. A
// cache outage degrades to a direct read, never to an error.
func (s *Service) Stats(ctx context.Context) (model.ChatStats, error) {
	if s.store == nil {
		return model.ChatStats{}, fmt.Errorf("chat room store is nil")
	}

	if s.cache != nil {
		stats, hit, err := s.cache.GetStats(ctx)
		if err != nil {
			s.log.Warn("chat stats cache read failed", zap.Error(err))
		} else if hit {
			return stats, nil
		}
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return model.ChatStats{}, fmt.Errorf("load chat stats: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetStats(ctx, stats, s.cacheTTL); err != nil {
			s.log.Warn("chat stats cache write failed", zap.Error(err))
		}
	}

	return stats, nil
}

// UpdateStatus validates the target status, applies it, and drops the
// cached stats. Any pending-to-active-to-matched ordering is advisory
// only: admins may set any valid status from any current status.
func (s *Service) UpdateStatus(ctx context.Context, roomID string, rawStatus string) error {
	if s.store == nil {
		return fmt.Errorf("chat room store is nil")
	}

	status, err := enums.ParseRoomStatus(rawStatus)
	if err != nil {
		return err
	}

	if err := s.store.UpdateStatus(ctx, roomID, status); err != nil {
		return fmt.Errorf("update room %s status: %w", roomID, err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateStats(ctx); err != nil {
			s.log.Warn("chat stats cache invalidation failed", zap.Error(err))
		}
	}

	return nil
}
