package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Prometheus-P/tee-up-new/internal/domain/enums"
	"github.com/Prometheus-P/tee-up-new/internal/domain/model"
)

var ErrChatRoomNotFound = errors.New("chat room not found")

type ChatRoomRepo struct {
	pool *pgxpool.Pool
}

func NewChatRoomRepo(pool *pgxpool.Pool) *ChatRoomRepo {
	return &ChatRoomRepo{pool: pool}
}

func (r *ChatRoomRepo) ListRooms(ctx context.Context) ([]model.ChatRoom, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	id,
	pro_id,
	golfer_id,
	pro_name,
	golfer_name,
	COALESCE(golfer_phone, ''),
	COALESCE(last_message, ''),
	last_message_at,
	unread_count,
	status,
	created_at,
	updated_at
FROM chat_rooms
ORDER BY updated_at DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list chat rooms: %w", err)
	}
	defer rows.Close()

	var rooms []model.ChatRoom
	for rows.Next() {
		var room model.ChatRoom
		var status string
		if err := rows.Scan(
			&room.ID,
			&room.ProID,
			&room.GolferID,
			&room.ProName,
			&room.GolferName,
			&room.GolferPhone,
			&room.LastMessage,
			&room.LastMessageAt,
			&room.UnreadCount,
			&status,
			&room.CreatedAt,
			&room.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan chat room: %w", err)
		}
		room.Status = enums.RoomStatus(status)
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat rooms: %w", err)
	}

	return rooms, nil
}

func (r *ChatRoomRepo) Stats(ctx context.Context) (model.ChatStats, error) {
	if r.pool == nil {
		return model.ChatStats{}, fmt.Errorf("postgres pool is nil")
	}

	var stats model.ChatStats
	if err := r.pool.QueryRow(ctx, `
SELECT
	(SELECT COUNT(*) FROM chat_rooms),
	(SELECT COUNT(*) FROM chat_rooms WHERE status = 'active'),
	(SELECT COUNT(*) FROM chat_rooms WHERE status = 'matched'),
	(SELECT COUNT(*) FROM flagged_messages WHERE status = 'pending')
`).Scan(
		&stats.TotalRooms,
		&stats.ActiveRooms,
		&stats.MatchedRooms,
		&stats.FlaggedMessages,
	); err != nil {
		return model.ChatStats{}, fmt.Errorf("load chat stats: %w", err)
	}

	return stats, nil
}

func (r *ChatRoomRepo) UpdateStatus(ctx context.Context, id string, status enums.RoomStatus) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("invalid chat room id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE chat_rooms
SET status = $2, updated_at = NOW()
WHERE id = $1
`, id, string(status))
	if err != nil {
		return fmt.Errorf("update chat room status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrChatRoomNotFound
	}

	return nil
}
