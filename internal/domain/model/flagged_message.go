package model

import (
	"time"

	"github.com/Prometheus-P/tee-up-new/internal/domain/enums"
)

// FlaggedMessage is a chat message an upstream detector marked as
// policy-risk. Sender is a display-name snapshot taken at flag time.
type FlaggedMessage struct {
	ID         string           `json:"id"`
	ChatRoomID string           `json:"chat_room_id"`
	Sender     string           `json:"sender"`
	Content    string           `json:"content"`
	FlagReason string           `json:"flag_reason"`
	FlaggedAt  time.Time        `json:"flagged_at"`
	Status     enums.FlagStatus `json:"status"`
}
