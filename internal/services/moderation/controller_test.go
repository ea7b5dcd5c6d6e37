package moderation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Prometheus-P/tee-up-new/internal/domain/model"
	pgrepo "github.com/Prometheus-P/tee-up-new/internal/repo/postgres"
)

type fakeFlaggedStore struct {
	items []model.FlaggedMessage

	dismissCalls []string
	deleteCalls  []string

	dismissErr error
	deleteErr  error
	listErr    error

	blockUntil chan struct{}
}

func (f *fakeFlaggedStore) ListFlagged(ctx context.Context) ([]model.FlaggedMessage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.FlaggedMessage, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeFlaggedStore) Dismiss(ctx context.Context, id string) error {
	f.dismissCalls = append(f.dismissCalls, id)
	f.wait(ctx)
	return f.dismissErr
}

func (f *fakeFlaggedStore) Delete(ctx context.Context, id string) error {
	f.deleteCalls = append(f.deleteCalls, id)
	f.wait(ctx)
	return f.deleteErr
}

func (f *fakeFlaggedStore) wait(ctx context.Context) {
	if f.blockUntil == nil {
		return
	}
	select {
	case <-f.blockUntil:
	case <-ctx.Done():
	}
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

func seededController(t *testing.T, store *fakeFlaggedStore) *Controller {
	t.Helper()
	ctrl := NewController(store, Config{ActionTimeout: time.Second})
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("seed refresh: %v", err)
	}
	return ctrl
}

func twoMessages(t *testing.T) []model.FlaggedMessage {
	t.Helper()
	return []model.FlaggedMessage{
		{ID: "msg-2", FlaggedAt: mustTime(t, "2025-11-23T16:45:00Z"), Sender: "Kim Minjun", Content: "call me at 010-..."},
		{ID: "msg-1", FlaggedAt: mustTime(t, "2025-11-24T12:20:00Z"), Sender: "Lee Seo-yeon", Content: "pay outside the app"},
	}
}

func TestListSortsByFlaggedAtDescending(t *testing.T) {
	store := &fakeFlaggedStore{items: twoMessages(t)}
	ctrl := seededController(t, store)

	got := ctrl.List()
	if len(got) != 2 {
		t.Fatalf("unexpected list size: %d", len(got))
	}
	if got[0].ID != "msg-1" || got[1].ID != "msg-2" {
		t.Fatalf("unexpected order: [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestResolveDismissRemovesFromActiveSet(t *testing.T) {
	store := &fakeFlaggedStore{items: twoMessages(t)}
	ctrl := seededController(t, store)

	if err := ctrl.Resolve(context.Background(), "msg-1", OutcomeDismiss); err != nil {
		t.Fatalf("resolve dismiss: %v", err)
	}

	for _, item := range ctrl.List() {
		if item.ID == "msg-1" {
			t.Fatalf("msg-1 still in active set after dismiss")
		}
	}
	if len(store.dismissCalls) != 1 || store.dismissCalls[0] != "msg-1" {
		t.Fatalf("unexpected dismiss calls: %v", store.dismissCalls)
	}
	if errMsg := ctrl.LastError(); errMsg != "" {
		t.Fatalf("unexpected error after success: %q", errMsg)
	}
}

func TestResolveDeleteInvokesStoreOnce(t *testing.T) {
	store := &fakeFlaggedStore{items: twoMessages(t)}
	ctrl := seededController(t, store)

	if err := ctrl.Resolve(context.Background(), "msg-1", OutcomeDelete); err != nil {
		t.Fatalf("resolve delete: %v", err)
	}

	got := ctrl.List()
	if len(got) != 1 || got[0].ID != "msg-2" {
		t.Fatalf("unexpected active set after delete: %+v", got)
	}
	if len(store.deleteCalls) != 1 || store.deleteCalls[0] != "msg-1" {
		t.Fatalf("delete not invoked exactly once with msg-1: %v", store.deleteCalls)
	}
	if len(store.dismissCalls) != 0 {
		t.Fatalf("dismiss should not have been called: %v", store.dismissCalls)
	}
}

func TestResolveFailureKeepsRecordActionable(t *testing.T) {
	store := &fakeFlaggedStore{items: twoMessages(t), dismissErr: fmt.Errorf("connection reset")}
	ctrl := seededController(t, store)

	err := ctrl.Resolve(context.Background(), "msg-1", OutcomeDismiss)
	if err == nil {
		t.Fatalf("expected resolve failure")
	}

	found := false
	for _, item := range ctrl.List() {
		if item.ID == "msg-1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("msg-1 dropped from active set on failure")
	}
	if ctrl.LastError() == "" {
		t.Fatalf("expected surfaced error")
	}

	// record stays retryable
	store.dismissErr = nil
	if err := ctrl.Resolve(context.Background(), "msg-1", OutcomeDismiss); err != nil {
		t.Fatalf("retry after transient failure: %v", err)
	}
	if ctrl.LastError() != "" {
		t.Fatalf("error not superseded by successful attempt")
	}
}

func TestResolveNotFoundDropsRecord(t *testing.T) {
	store := &fakeFlaggedStore{items: twoMessages(t), deleteErr: pgrepo.ErrFlaggedMessageNotFound}
	ctrl := seededController(t, store)

	err := ctrl.Resolve(context.Background(), "msg-1", OutcomeDelete)
	if !errors.Is(err, pgrepo.ErrFlaggedMessageNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	for _, item := range ctrl.List() {
		if item.ID == "msg-1" {
			t.Fatalf("remotely-deleted record kept in active set")
		}
	}
	if ctrl.LastError() == "" {
		t.Fatalf("expected surfaced error for stale record")
	}
}

func TestResolveRejectsConcurrentAction(t *testing.T) {
	store := &fakeFlaggedStore{items: twoMessages(t), blockUntil: make(chan struct{})}
	ctrl := seededController(t, store)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- ctrl.Resolve(context.Background(), "msg-1", OutcomeDismiss)
	}()

	// wait until the first resolve holds the gate
	deadline := time.After(time.Second)
	for {
		if _, busy := ctrl.ProcessingID(); busy {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("first resolve never acquired the gate")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if err := ctrl.Resolve(context.Background(), "msg-2", OutcomeDismiss); !errors.Is(err, ErrActionInFlight) {
		t.Fatalf("expected ErrActionInFlight, got %v", err)
	}
	if got := ctrl.List(); len(got) != 2 {
		t.Fatalf("rejected call altered the active set: %+v", got)
	}

	close(store.blockUntil)
	if err := <-firstDone; err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	if _, busy := ctrl.ProcessingID(); busy {
		t.Fatalf("gate still held after completion")
	}
	if len(store.dismissCalls) != 1 {
		t.Fatalf("second resolve reached the store: %v", store.dismissCalls)
	}
}

func TestResolveUnknownIDFailsWithoutStoreCall(t *testing.T) {
	store := &fakeFlaggedStore{items: twoMessages(t)}
	ctrl := seededController(t, store)

	err := ctrl.Resolve(context.Background(), "msg-404", OutcomeDismiss)
	if !errors.Is(err, pgrepo.ErrFlaggedMessageNotFound) {
		t.Fatalf("expected not-found for unknown id, got %v", err)
	}
	if len(store.dismissCalls) != 0 {
		t.Fatalf("store called for unknown id: %v", store.dismissCalls)
	}
}

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		raw     string
		want    Outcome
		wantErr bool
	}{
		{raw: "delete", want: OutcomeDelete},
		{raw: "dismiss", want: OutcomeDismiss},
		{raw: "approve", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseOutcome(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownOutcome) {
					t.Fatalf("expected ErrUnknownOutcome, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("unexpected result: got=%q err=%v", got, err)
			}
		})
	}
}

func TestRefreshReplacesCache(t *testing.T) {
	store := &fakeFlaggedStore{items: twoMessages(t)}
	ctrl := seededController(t, store)

	store.items = []model.FlaggedMessage{
		{ID: "msg-9", FlaggedAt: mustTime(t, "2025-11-25T09:00:00Z")},
	}
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	got := ctrl.List()
	if len(got) != 1 || got[0].ID != "msg-9" {
		t.Fatalf("cache not replaced: %+v", got)
	}
}
