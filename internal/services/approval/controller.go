package approval

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Prometheus-P/tee-up-new/internal/domain/enums"
	"github.com/Prometheus-P/tee-up-new/internal/domain/model"
	"github.com/Prometheus-P/tee-up-new/internal/pkg/oneflight"
	pgrepo "github.com/Prometheus-P/tee-up-new/internal/repo/postgres"
)

var (
	ErrActionInFlight = errors.New("another approval action is already in flight")
	ErrQueueEmpty     = errors.New("approval queue is empty")
)

type ProfileStore interface {
	ListPending(ctx context.Context) ([]model.ProProfile, error)
	ListApproved(ctx context.Context) ([]model.ProProfile, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}

type URLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type AlertSink interface {
	Send(ctx context.Context, text string) error
}

type Config struct {
	ActionTimeout time.Duration
	MediaURLTTL   time.Duration
}

// Lists is the two-partition view the admin console renders. A profile is
// in exactly one partition; approve moves it, reject removes it.
type Lists struct {
	Pending  []model.ProProfile
	Approved []model.ProProfile
}

// QueueItem is the oldest pending submission plus short-lived media URLs
// for review.
type QueueItem struct {
	Profile         model.ProProfile
	ProfileImageURL string
	GalleryURLs     []string
	QueueSize       int
}

// Controller mirrors the moderation controller's single-flight discipline
// across the pending and approved partitions. Approve reconciles by
// refetching both partitions (server-side counter initialization is not
// client-predictable); reject patches the pending list locally. Each
// path's strategy is declared, not incidental.
type Controller struct {
	store    ProfileStore
	signer   URLSigner
	gate     *oneflight.Gate
	timeout  time.Duration
	mediaTTL time.Duration
	alerts   AlertSink

	mu       sync.Mutex
	pending  []model.ProProfile
	approved []model.ProProfile
	lastErr  string
}

func NewController(store ProfileStore, cfg Config) *Controller {
	timeout := cfg.ActionTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	mediaTTL := cfg.MediaURLTTL
	if mediaTTL <= 0 {
		mediaTTL = 5 * time.Minute
	}

	return &Controller{
		store:    store,
		gate:     oneflight.NewGate(timeout),
		timeout:  timeout,
		mediaTTL: mediaTTL,
	}
}

func (c *Controller) AttachSigner(signer URLSigner) {
	c.signer = signer
}

func (c *Controller) AttachAlerts(sink AlertSink) {
	c.alerts = sink
}

// Refresh replaces both partitions from the store.
func (c *Controller) Refresh(ctx context.Context) error {
	pending, approved, err := c.fetchBoth(ctx)
	if err != nil {
		c.setError(err.Error())
		return err
	}

	c.mu.Lock()
	c.pending = pending
	c.approved = approved
	c.lastErr = ""
	c.mu.Unlock()

	return nil
}

// List returns both partitions ordered by submission time ascending:
// pending because oldest submissions are reviewed first, approved for a
// stable audit trail.
func (c *Controller) List() Lists {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := Lists{
		Pending:  make([]model.ProProfile, len(c.pending)),
		Approved: make([]model.ProProfile, len(c.approved)),
	}
	copy(out.Pending, c.pending)
	copy(out.Approved, c.approved)
	return out
}

// Approve moves one pending profile into the approved partition.
func (c *Controller) Approve(ctx context.Context, id string) error {
	return c.apply(ctx, id, c.store.Approve, enums.StrategyRefetch, "approved")
}

// Reject removes one pending profile permanently.
func (c *Controller) Reject(ctx context.Context, id string) error {
	return c.apply(ctx, id, c.store.Reject, enums.StrategyLocalPatch, "rejected")
}

func (c *Controller) apply(ctx context.Context, id string, mutate func(context.Context, string) error, strategy enums.ConsistencyStrategy, verb string) error {
	if c.store == nil {
		return fmt.Errorf("pro profile store is nil")
	}

	release, err := c.gate.Acquire(id)
	if err != nil {
		if errors.Is(err, oneflight.ErrHeld) {
			return ErrActionInFlight
		}
		return err
	}
	defer release()

	c.mu.Lock()
	if !c.pendingHasLocked(id) {
		c.lastErr = "profile is not in the pending queue"
		c.mu.Unlock()
		return fmt.Errorf("%s %s: %w", verb, id, pgrepo.ErrProProfileNotFound)
	}
	c.lastErr = ""
	c.mu.Unlock()

	opCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := mutate(opCtx, id); err != nil {
		if errors.Is(err, pgrepo.ErrProProfileNotFound) {
			c.removePending(id)
		}
		c.setError(err.Error())
		return fmt.Errorf("%s %s: %w", verb, id, err)
	}

	switch strategy {
	case enums.StrategyRefetch:
		// the mutation landed; a failed refetch leaves lists stale but
		// never rolls the decision back
		pending, approved, err := c.fetchBoth(opCtx)
		if err != nil {
			c.setError(err.Error())
			return fmt.Errorf("%s %s: %w", verb, id, err)
		}
		c.mu.Lock()
		c.pending = pending
		c.approved = approved
		c.mu.Unlock()
	case enums.StrategyLocalPatch:
		c.removePending(id)
	}

	if c.alerts != nil {
		_ = c.alerts.Send(ctx, fmt.Sprintf("pro profile %s %s", id, verb))
	}

	return nil
}

// NextQueueItem returns the oldest pending submission with presigned media
// URLs for the reviewer.
func (c *Controller) NextQueueItem(ctx context.Context) (QueueItem, error) {
	c.mu.Lock()
	pending := make([]model.ProProfile, len(c.pending))
	copy(pending, c.pending)
	c.mu.Unlock()

	if len(pending) == 0 {
		if err := c.Refresh(ctx); err != nil {
			return QueueItem{}, err
		}
		c.mu.Lock()
		pending = make([]model.ProProfile, len(c.pending))
		copy(pending, c.pending)
		c.mu.Unlock()
	}
	if len(pending) == 0 {
		return QueueItem{}, ErrQueueEmpty
	}

	item := QueueItem{
		Profile:   pending[0],
		QueueSize: len(pending),
	}

	url, err := c.signKey(ctx, item.Profile.ProfileImageKey)
	if err != nil {
		return QueueItem{}, err
	}
	item.ProfileImageURL = url

	for _, key := range item.Profile.GalleryKeys {
		url, err := c.signKey(ctx, key)
		if err != nil {
			return QueueItem{}, err
		}
		if url != "" {
			item.GalleryURLs = append(item.GalleryURLs, url)
		}
	}

	return item, nil
}

func (c *Controller) ProcessingID() (string, bool) {
	return c.gate.InFlight()
}

func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) ClearError() {
	c.setError("")
}

func (c *Controller) fetchBoth(ctx context.Context) ([]model.ProProfile, []model.ProProfile, error) {
	if c.store == nil {
		return nil, nil, fmt.Errorf("pro profile store is nil")
	}

	pending, err := c.store.ListPending(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch pending profiles: %w", err)
	}
	approved, err := c.store.ListApproved(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch approved profiles: %w", err)
	}

	sortBySubmission(pending)
	sortBySubmission(approved)
	return pending, approved, nil
}

func (c *Controller) signKey(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", nil
	}
	if c.signer == nil {
		return "", fmt.Errorf("approval url signer is not configured")
	}
	url, err := c.signer.PresignGet(ctx, key, c.mediaTTL)
	if err != nil {
		return "", fmt.Errorf("sign media key: %w", err)
	}
	return url, nil
}

func (c *Controller) pendingHasLocked(id string) bool {
	for _, p := range c.pending {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (c *Controller) removePending(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.pending[:0]
	for _, p := range c.pending {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.pending = kept
}

func (c *Controller) setError(msg string) {
	c.mu.Lock()
	c.lastErr = msg
	c.mu.Unlock()
}

func sortBySubmission(profiles []model.ProProfile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		if !profiles[i].CreatedAt.Equal(profiles[j].CreatedAt) {
			return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
		}
		return profiles[i].ID < profiles[j].ID
	})
}
