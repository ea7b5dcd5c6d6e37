package model

import (
	"time"

	"github.com/Prometheus-P/tee-up-new/internal/domain/enums"
)

type ChatRoom struct {
	ID            string           `json:"id"`
	ProID         string           `json:"pro_id"`
	GolferID      string           `json:"golfer_id"`
	ProName       string           `json:"pro_name"`
	GolferName    string           `json:"golfer_name"`
	GolferPhone   string           `json:"golfer_phone,omitempty"`
	LastMessage   string           `json:"last_message,omitempty"`
	LastMessageAt *time.Time       `json:"last_message_at,omitempty"`
	UnreadCount   int              `json:"unread_count"`
	Status        enums.RoomStatus `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type ChatStats struct {
	TotalRooms      int `json:"total_rooms"`
	ActiveRooms     int `json:"active_rooms"`
	MatchedRooms    int `json:"matched_rooms"`
	FlaggedMessages int `json:"flagged_messages"`
}
