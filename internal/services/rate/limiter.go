package rate

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const loginWindow = time.Minute

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter throttles admin login attempts per account. A fixed one-minute
// window is enough here; lockout policy beyond that lives with the
// account, not the limiter.
type Limiter struct {
	store     WindowStore
	perMinute int
}

func NewLimiter(store WindowStore, perMinute int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}
	return &Limiter{
		store:     store,
		perMinute: perMinute,
	}
}

// AllowLogin reports whether another attempt for this email is allowed,
// and the retry-after seconds when it is not. A zero per-minute limit
// disables throttling.
func (l *Limiter) AllowLogin(ctx context.Context, email string) (int64, bool, error) {
	if l == nil || l.store == nil || l.perMinute <= 0 {
		return 0, true, nil
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return 0, false, fmt.Errorf("email is required")
	}

	count, ttl, err := l.store.IncrementWindow(ctx, loginKey(email), loginWindow)
	if err != nil {
		return 0, false, err
	}
	if count > int64(l.perMinute) {
		return ceilSeconds(ttl), false, nil
	}
	return 0, true, nil
}

func loginKey(email string) string {
	return "admin_login_rate:" + email
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 1
	}
	secs := int64(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	if secs <= 0 {
		secs = 1
	}
	return secs
}
