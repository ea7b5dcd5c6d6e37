package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/Prometheus-P/tee-up-new/internal/domain/enums"
	"github.com/Prometheus-P/tee-up-new/internal/domain/model"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterUpcoming  Filter = "upcoming"
	FilterPast      Filter = "past"
	FilterCancelled Filter = "cancelled"
)

func ParseFilter(raw string) (Filter, error) {
	if raw == "" {
		return FilterAll, nil
	}
	switch Filter(raw) {
	case FilterAll, FilterUpcoming, FilterPast, FilterCancelled:
		return Filter(raw), nil
	default:
		return "", fmt.Errorf("unknown booking filter %q", raw)
	}
}

type BookingStore interface {
	ListByPro(ctx context.Context, proID string) ([]model.Booking, error)
}

// View is a booking annotated with its resolved display status and badge,
// ready for the admin dashboard.
type View struct {
	model.Booking
	DisplayStatus enums.DisplayStatus `json:"display_status"`
	Badge         enums.BadgeVariant  `json:"badge"`
}

type Service struct {
	store BookingStore
	now   func() time.Time
}

func NewService(store BookingStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// ListByPro returns a pro's bookings, filtered and annotated with display
// statuses. Cancelled bookings count as neither upcoming nor past.
func (s *Service) ListByPro(ctx context.Context, proID string, filter Filter) ([]View, error) {
	if s.store == nil {
		return nil, fmt.Errorf("booking store is nil")
	}

	all, err := s.store.ListByPro(ctx, proID)
	if err != nil {
		return nil, fmt.Errorf("list bookings for pro %s: %w", proID, err)
	}

	now := s.now()
	views := make([]View, 0, len(all))
	for _, b := range all {
		if !matchesFilter(b, filter, now) {
			continue
		}
		ds := DisplayStatusFor(b)
		views = append(views, View{
			Booking:       b,
			DisplayStatus: ds,
			Badge:         ds.Badge(),
		})
	}
	return views, nil
}

func matchesFilter(b model.Booking, filter Filter, now time.Time) bool {
	switch filter {
	case FilterUpcoming:
		return b.Status != enums.BookingStatusCancelled && b.StartAt.After(now)
	case FilterPast:
		return b.Status != enums.BookingStatusCancelled && !b.EndAt.After(now)
	case FilterCancelled:
		return b.Status == enums.BookingStatusCancelled
	default:
		return true
	}
}

// DisplayStatusFor resolves a booking's badge with strict precedence: an
// open dispute wins over refund state, refund state wins over the raw
// booking status. A booking that is both disputed and refund-requested
// displays as disputed.
func DisplayStatusFor(b model.Booking) enums.DisplayStatus {
	switch {
	case b.DisputeStatus != "":
		return enums.DisplayStatusDisputed
	case b.RefundRequestedAt != nil && b.PaymentStatus != enums.PaymentStatusRefunded:
		return enums.DisplayStatusRefundPending
	case b.PaymentStatus == enums.PaymentStatusRefunded:
		return enums.DisplayStatusRefunded
	}

	switch b.Status {
	case enums.BookingStatusConfirmed:
		return enums.DisplayStatusConfirmed
	case enums.BookingStatusPending:
		return enums.DisplayStatusPending
	case enums.BookingStatusCompleted:
		return enums.DisplayStatusCompleted
	case enums.BookingStatusCancelled:
		return enums.DisplayStatusCancelled
	default:
		return ""
	}
}
