package model

import (
	"time"

	"github.com/Prometheus-P/tee-up-new/internal/domain/enums"
)

type Booking struct {
	ID                string              `json:"id"`
	ProID             string              `json:"pro_id"`
	StartAt           time.Time           `json:"start_at"`
	EndAt             time.Time           `json:"end_at"`
	Status            enums.BookingStatus `json:"status"`
	PaymentStatus     enums.PaymentStatus `json:"payment_status"`
	PriceAmount       int64               `json:"price_amount"`
	RefundRequestedAt *time.Time          `json:"refund_requested_at,omitempty"`
	RefundAmount      int64               `json:"refund_amount"`
	DisputeStatus     string              `json:"dispute_status,omitempty"`
}
