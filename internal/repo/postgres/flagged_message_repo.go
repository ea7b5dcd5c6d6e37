package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Prometheus-P/tee-up-new/internal/domain/enums"
	"github.com/Prometheus-P/tee-up-new/internal/domain/model"
)

var ErrFlaggedMessageNotFound = errors.New("flagged message not found")

type FlaggedMessageRepo struct {
	pool *pgxpool.Pool
}

func NewFlaggedMessageRepo(pool *pgxpool.Pool) *FlaggedMessageRepo {
	return &FlaggedMessageRepo{pool: pool}
}

func (r *FlaggedMessageRepo) ListFlagged(ctx context.Context) ([]model.FlaggedMessage, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, chat_room_id, sender_name, content, flag_reason, flagged_at
FROM flagged_messages
WHERE status = 'pending'
ORDER BY flagged_at DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list flagged messages: %w", err)
	}
	defer rows.Close()

	var items []model.FlaggedMessage
	for rows.Next() {
		item := model.FlaggedMessage{Status: enums.FlagStatusPending}
		if err := rows.Scan(
			&item.ID,
			&item.ChatRoomID,
			&item.Sender,
			&item.Content,
			&item.FlagReason,
			&item.FlaggedAt,
		); err != nil {
			return nil, fmt.Errorf("scan flagged message: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flagged messages: %w", err)
	}

	return items, nil
}

// Dismiss clears the flag and keeps the underlying message.
func (r *FlaggedMessageRepo) Dismiss(ctx context.Context, id string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("invalid flagged message id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE flagged_messages
SET status = 'reviewed', reviewed_at = NOW()
WHERE id = $1 AND status = 'pending'
`, id)
	if err != nil {
		return fmt.Errorf("dismiss flagged message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFlaggedMessageNotFound
	}

	return nil
}

// Delete removes the offending chat message and marks the flag reviewed in
// one transaction. Resolution deletes content, it does not just flip a bit.
func (r *FlaggedMessageRepo) Delete(ctx context.Context, id string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("invalid flagged message id")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `
UPDATE flagged_messages
SET status = 'reviewed', reviewed_at = NOW()
WHERE id = $1 AND status = 'pending'
`, id)
	if err != nil {
		return fmt.Errorf("mark flagged message reviewed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFlaggedMessageNotFound
	}

	if _, err := tx.Exec(ctx, `
DELETE FROM chat_messages
WHERE id = (SELECT message_id FROM flagged_messages WHERE id = $1)
`, id); err != nil {
		return fmt.Errorf("delete flagged chat message: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete transaction: %w", err)
	}

	return nil
}

func (r *FlaggedMessageRepo) CountFlagged(ctx context.Context) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM flagged_messages
WHERE status = 'pending'
`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count flagged messages: %w", err)
	}

	return count, nil
}

// PurgeReviewedBefore removes reviewed records older than cutoff. Pending
// records are never touched.
func (r *FlaggedMessageRepo) PurgeReviewedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
DELETE FROM flagged_messages
WHERE status = 'reviewed' AND flagged_at < $1
`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge reviewed flagged messages: %w", err)
	}

	return tag.RowsAffected(), nil
}
