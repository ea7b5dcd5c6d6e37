package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Prometheus-P/tee-up-new/internal/domain/enums"
	"github.com/Prometheus-P/tee-up-new/internal/domain/model"
)

// BookingRepo is read-only: bookings are mutated by the booking flow, the
// admin surface only renders them.
type BookingRepo struct {
	pool *pgxpool.Pool
}

func NewBookingRepo(pool *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{pool: pool}
}

func (r *BookingRepo) ListByPro(ctx context.Context, proID string) ([]model.Booking, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(proID) == "" {
		return nil, fmt.Errorf("invalid pro id")
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	id,
	pro_id,
	start_at,
	end_at,
	status,
	payment_status,
	COALESCE(price_amount, 0),
	refund_requested_at,
	COALESCE(refund_amount, 0),
	COALESCE(dispute_status, '')
FROM bookings
WHERE pro_id = $1
ORDER BY start_at DESC, id DESC
`, proID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		var status, paymentStatus string
		if err := rows.Scan(
			&b.ID,
			&b.ProID,
			&b.StartAt,
			&b.EndAt,
			&status,
			&paymentStatus,
			&b.PriceAmount,
			&b.RefundRequestedAt,
			&b.RefundAmount,
			&b.DisputeStatus,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.Status = enums.BookingStatus(status)
		b.PaymentStatus = enums.PaymentStatus(paymentStatus)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}
