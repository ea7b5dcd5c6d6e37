package dto

import "time"

type BookingItem struct {
	ID            string    `json:"id"`
	ProID         string    `json:"pro_id"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	PriceAmount   int64     `json:"price_amount"`
	DisplayStatus string    `json:"display_status"`
	Badge         string    `json:"badge"`
}

type BookingsResponse struct {
	Items  []BookingItem `json:"items"`
	Filter string        `json:"filter"`
}
