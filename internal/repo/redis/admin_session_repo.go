package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

var ErrAdminSessionNotFound = errors.New("admin session not found")

const adminSessionPrefix = "admin_sessions:"

type AdminSessionRepo struct {
	client *goredis.Client
}

func NewAdminSessionRepo(client *goredis.Client) *AdminSessionRepo {
	return &AdminSessionRepo{client: client}
}

func (r *AdminSessionRepo) Create(ctx context.Context, sid string, adminID int64, role string, idleTimeout time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(sid) == "" || adminID <= 0 {
		return fmt.Errorf("invalid admin session payload")
	}
	if idleTimeout <= 0 {
		idleTimeout = 30 * time.Minute
	}

	key := adminSessionKey(sid)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"admin_id": adminID,
		"role":     role,
	})
	pipe.Expire(ctx, key, idleTimeout)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create admin session: %w", err)
	}

	return nil
}

// Touch validates the session belongs to adminID, extends the idle window
// and returns the stored role.
func (r *AdminSessionRepo) Touch(ctx context.Context, sid string, adminID int64, idleTimeout time.Duration) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("redis client is nil")
	}
	if idleTimeout <= 0 {
		idleTimeout = 30 * time.Minute
	}

	key := adminSessionKey(sid)
	values, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("get admin session: %w", err)
	}
	if len(values) == 0 {
		return "", ErrAdminSessionNotFound
	}

	storedID, err := strconv.ParseInt(values["admin_id"], 10, 64)
	if err != nil || storedID != adminID {
		return "", ErrAdminSessionNotFound
	}

	if err := r.client.Expire(ctx, key, idleTimeout).Err(); err != nil {
		return "", fmt.Errorf("extend admin session: %w", err)
	}

	return values["role"], nil
}

func (r *AdminSessionRepo) Delete(ctx context.Context, sid string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, adminSessionKey(sid)).Err(); err != nil {
		return fmt.Errorf("delete admin session: %w", err)
	}
	return nil
}

func adminSessionKey(sid string) string {
	return adminSessionPrefix + sid
}
