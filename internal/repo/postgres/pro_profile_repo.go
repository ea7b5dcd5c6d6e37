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

var ErrProProfileNotFound = errors.New("pro profile not found")

type ProProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProProfileRepo(pool *pgxpool.Pool) *ProProfileRepo {
	return &ProProfileRepo{pool: pool}
}

const proProfileColumns = `
	id,
	user_id,
	slug,
	title,
	bio,
	specialties,
	location,
	certifications,
	COALESCE(profile_image_key, ''),
	gallery_keys,
	is_approved,
	profile_views,
	monthly_chat_count,
	total_leads,
	matched_lessons,
	rating,
	subscription_tier,
	created_at,
	updated_at`

// ListPending returns submissions awaiting review, oldest first so the
// queue is reviewed in submission order.
func (r *ProProfileRepo) ListPending(ctx context.Context) ([]model.ProProfile, error) {
	return r.list(ctx, `
SELECT `+proProfileColumns+`
FROM pro_profiles
WHERE is_approved = FALSE
ORDER BY created_at ASC, id ASC
`)
}

func (r *ProProfileRepo) ListApproved(ctx context.Context) ([]model.ProProfile, error) {
	return r.list(ctx, `
SELECT `+proProfileColumns+`
FROM pro_profiles
WHERE is_approved = TRUE
ORDER BY created_at ASC, id ASC
`)
}

// Approve moves a profile into the approved partition and zeroes the usage
// counters the marketplace starts accruing from this point.
func (r *ProProfileRepo) Approve(ctx context.Context, id string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("invalid pro profile id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE pro_profiles
SET
	is_approved = TRUE,
	profile_views = 0,
	monthly_chat_count = 0,
	total_leads = 0,
	matched_lessons = 0,
	rating = 0,
	approved_at = NOW(),
	updated_at = NOW()
WHERE id = $1 AND is_approved = FALSE
`, id)
	if err != nil {
		return fmt.Errorf("approve pro profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProProfileNotFound
	}

	return nil
}

// Reject removes the submission entirely. No soft-delete trail is kept;
// the pro may submit again from scratch.
func (r *ProProfileRepo) Reject(ctx context.Context, id string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("invalid pro profile id")
	}

	tag, err := r.pool.Exec(ctx, `
DELETE FROM pro_profiles
WHERE id = $1 AND is_approved = FALSE
`, id)
	if err != nil {
		return fmt.Errorf("reject pro profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProProfileNotFound
	}

	return nil
}

func (r *ProProfileRepo) list(ctx context.Context, query string) ([]model.ProProfile, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pro profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.ProProfile
	for rows.Next() {
		var p model.ProProfile
		var tier string
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Slug,
			&p.Title,
			&p.Bio,
			&p.Specialties,
			&p.Location,
			&p.Certifications,
			&p.ProfileImageKey,
			&p.GalleryKeys,
			&p.IsApproved,
			&p.ProfileViews,
			&p.MonthlyChats,
			&p.TotalLeads,
			&p.MatchedLessons,
			&p.Rating,
			&tier,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pro profile: %w", err)
		}
		p.Tier = enums.SubscriptionTier(tier)
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pro profiles: %w", err)
	}

	return profiles, nil
}
