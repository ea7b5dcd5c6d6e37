package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Prometheus-P/tee-up-new/internal/domain/model"
)

var ErrAdminUserNotFound = errors.New("admin user not found")

type AdminUserRepo struct {
	pool *pgxpool.Pool
}

func NewAdminUserRepo(pool *pgxpool.Pool) *AdminUserRepo {
	return &AdminUserRepo{pool: pool}
}

func (r *AdminUserRepo) GetByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	if r.pool == nil {
		return model.AdminUser{}, fmt.Errorf("postgres pool is nil")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return model.AdminUser{}, fmt.Errorf("invalid admin email")
	}

	var user model.AdminUser
	err := r.pool.QueryRow(ctx, `
SELECT id, email, display_name, role, password_hash, COALESCE(totp_secret, ''), created_at
FROM admin_users
WHERE LOWER(email) = $1
LIMIT 1
`, email).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.Role,
		&user.PasswordHash,
		&user.TOTPSecret,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AdminUser{}, ErrAdminUserNotFound
		}
		return model.AdminUser{}, fmt.Errorf("query admin user: %w", err)
	}

	return user, nil
}

func (r *AdminUserRepo) SaveTOTPSecret(ctx context.Context, adminID int64, secret string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if adminID <= 0 || strings.TrimSpace(secret) == "" {
		return fmt.Errorf("invalid totp payload")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE admin_users
SET totp_secret = $2
WHERE id = $1
`, adminID, secret)
	if err != nil {
		return fmt.Errorf("save admin totp secret: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAdminUserNotFound
	}

	return nil
}
