package moderation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Prometheus-P/tee-up-new/internal/domain/enums"
	"github.com/Prometheus-P/tee-up-new/internal/domain/model"
	"github.com/Prometheus-P/tee-up-new/internal/pkg/oneflight"
	pgrepo "github.com/Prometheus-P/tee-up-new/internal/repo/postgres"
)

var (
	ErrActionInFlight = errors.New("another moderation action is already in flight")
	ErrUnknownOutcome = errors.New("unknown moderation outcome")
)

// Outcome is the admin's decision for a flagged message.
type Outcome string

const (
	// OutcomeDelete removes the offending message from the room.
	OutcomeDelete Outcome = "delete"
	// OutcomeDismiss clears the flag and keeps the message.
	OutcomeDismiss Outcome = "dismiss"
)

func ParseOutcome(raw string) (Outcome, error) {
	switch Outcome(raw) {
	case OutcomeDelete, OutcomeDismiss:
		return Outcome(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOutcome, raw)
	}
}

type FlaggedMessageStore interface {
	ListFlagged(ctx context.Context) ([]model.FlaggedMessage, error)
	Dismiss(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type AlertSink interface {
	Send(ctx context.Context, text string) error
}

type Config struct {
	ActionTimeout time.Duration
}

// Controller owns the in-memory moderation queue for one admin session.
// Exactly one resolve may be in flight at a time; a reentrant call is
// rejected synchronously instead of being queued. The store mutation either
// fully lands (and the record leaves the cache) or the cache is untouched.
type Controller struct {
	store   FlaggedMessageStore
	gate    *oneflight.Gate
	timeout time.Duration
	alerts  AlertSink

	mu      sync.Mutex
	items   []model.FlaggedMessage
	lastErr string
}

func NewController(store FlaggedMessageStore, cfg Config) *Controller {
	timeout := cfg.ActionTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Controller{
		store:   store,
		gate:    oneflight.NewGate(timeout),
		timeout: timeout,
	}
}

func (c *Controller) AttachAlerts(sink AlertSink) {
	c.alerts = sink
}

// Refresh replaces the local cache with the store's current active set.
func (c *Controller) Refresh(ctx context.Context) error {
	if c.store == nil {
		return fmt.Errorf("flagged message store is nil")
	}

	items, err := c.store.ListFlagged(ctx)
	if err != nil {
		c.setError(err.Error())
		return fmt.Errorf("refresh flagged messages: %w", err)
	}

	sortFlagged(items)

	c.mu.Lock()
	c.items = items
	c.lastErr = ""
	c.mu.Unlock()

	return nil
}

// List returns the active set, most recently flagged first.
func (c *Controller) List() []model.FlaggedMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.FlaggedMessage, len(c.items))
	copy(out, c.items)
	return out
}

// Resolve applies the admin's decision for one flagged message. The call
// fails with ErrActionInFlight when any resolve is already running, with
// the repo's not-found sentinel when the id is stale, and with the store's
// error otherwise. Only a confirmed mutation touches the cache.
func (c *Controller) Resolve(ctx context.Context, id string, outcome Outcome) error {
	apply, strategy, err := c.outcomeAction(outcome)
	if err != nil {
		return err
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
	if !c.hasLocked(id) {
		c.lastErr = "flagged message is not in the active queue"
		c.mu.Unlock()
		return fmt.Errorf("resolve %s: %w", id, pgrepo.ErrFlaggedMessageNotFound)
	}
	// a new attempt supersedes the previous error
	c.lastErr = ""
	c.mu.Unlock()

	opCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := apply(opCtx, id); err != nil {
		if errors.Is(err, pgrepo.ErrFlaggedMessageNotFound) {
			// gone remotely; keeping it actionable would only fail again
			c.removeLocal(id)
		}
		c.setError(err.Error())
		return fmt.Errorf("resolve %s: %w", id, err)
	}

	if strategy == enums.StrategyLocalPatch {
		c.removeLocal(id)
	}

	if outcome == OutcomeDelete && c.alerts != nil {
		_ = c.alerts.Send(ctx, fmt.Sprintf("flagged message %s deleted by moderation", id))
	}

	return nil
}

// ProcessingID reports the id currently mid-resolution, if any.
func (c *Controller) ProcessingID() (string, bool) {
	return c.gate.InFlight()
}

// LastError is the most recent surfaced failure, kept until the next
// attempt or an explicit clear.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) ClearError() {
	c.setError("")
}

func (c *Controller) outcomeAction(outcome Outcome) (func(context.Context, string) error, enums.ConsistencyStrategy, error) {
	if c.store == nil {
		return nil, "", fmt.Errorf("flagged message store is nil")
	}

	switch outcome {
	case OutcomeDelete:
		return c.store.Delete, enums.StrategyLocalPatch, nil
	case OutcomeDismiss:
		return c.store.Dismiss, enums.StrategyLocalPatch, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownOutcome, outcome)
	}
}

func (c *Controller) hasLocked(id string) bool {
	for _, item := range c.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (c *Controller) removeLocal(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

func (c *Controller) setError(msg string) {
	c.mu.Lock()
	c.lastErr = msg
	c.mu.Unlock()
}

func sortFlagged(items []model.FlaggedMessage) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].FlaggedAt.Equal(items[j].FlaggedAt) {
			return items[i].FlaggedAt.After(items[j].FlaggedAt)
		}
		return items[i].ID > items[j].ID
	})
}
