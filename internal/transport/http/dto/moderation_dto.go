package dto

import "time"

type FlaggedMessageItem struct {
	ID         string    `json:"id"`
	ChatRoomID string    `json:"chat_room_id"`
	Sender     string    `json:"sender"`
	Content    string    `json:"content"`
	FlagReason string    `json:"flag_reason"`
	FlaggedAt  time.Time `json:"flagged_at"`
}

type FlaggedMessagesResponse struct {
	Items        []FlaggedMessageItem `json:"items"`
	ProcessingID string               `json:"processing_id,omitempty"`
	LastError    string               `json:"last_error,omitempty"`
}

type ResolveFlaggedMessageRequest struct {
	Outcome string `json:"outcome"`
}

type ResolveFlaggedMessageResponse struct {
	ID      string `json:"id"`
	Outcome string `json:"outcome"`
}
