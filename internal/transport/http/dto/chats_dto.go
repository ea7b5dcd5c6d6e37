package dto

import "time"

type ChatRoomItem struct {
	ID            string     `json:"id"`
	ProID         string     `json:"pro_id"`
	GolferID      string     `json:"golfer_id"`
	ProName       string     `json:"pro_name"`
	GolferName    string     `json:"golfer_name"`
	LastMessage   string     `json:"last_message,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	UnreadCount   int        `json:"unread_count"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ChatRoomsResponse struct {
	Items []ChatRoomItem `json:"items"`
}

type ChatStatsResponse struct {
	TotalRooms      int `json:"total_rooms"`
	ActiveRooms     int `json:"active_rooms"`
	MatchedRooms    int `json:"matched_rooms"`
	FlaggedMessages int `json:"flagged_messages"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status"`
}

type UpdateRoomStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
