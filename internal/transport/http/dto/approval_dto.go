package dto

import "time"

type ProProfileItem struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Bio            string    `json:"bio,omitempty"`
	Specialties    []string  `json:"specialties,omitempty"`
	Location       string    `json:"location,omitempty"`
	Certifications []string  `json:"certifications,omitempty"`
	IsApproved     bool      `json:"is_approved"`
	ProfileViews   int     `json:"profile_views"`
	MonthlyChats   int     `json:"monthly_chats"`
	TotalLeads     int     `json:"total_leads"`
	MatchedLessons int     `json:"matched_lessons"`
	Rating         float64   `json:"rating"`
	Tier           string    `json:"tier,omitempty"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

type ProProfilesResponse struct {
	Pending      []ProProfileItem `json:"pending"`
	Approved     []ProProfileItem `json:"approved"`
	ProcessingID string           `json:"processing_id,omitempty"`
	LastError    string           `json:"last_error,omitempty"`
}

type ApprovalQueueItemResponse struct {
	Profile         ProProfileItem `json:"profile"`
	ProfileImageURL string         `json:"profile_image_url,omitempty"`
	GalleryURLs     []string       `json:"gallery_urls,omitempty"`
	QueueSize       int            `json:"queue_size"`
}

type ProfileDecisionResponse struct {
	ID       string `json:"id"`
	Decision string `json:"decision"`
}
