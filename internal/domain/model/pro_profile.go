package model

import (
	"time"

	"github.com/Prometheus-P/tee-up-new/internal/domain/enums"
)

// ProProfile lives in exactly one of two partitions; IsApproved is the
// partition key. Counters and rating are only meaningful once approved.
type ProProfile struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"user_id"`
	Slug            string                 `json:"slug"`
	Title           string                 `json:"title"`
	Bio             string                 `json:"bio"`
	Specialties     []string               `json:"specialties"`
	Location        string                 `json:"location"`
	Certifications  []string               `json:"certifications"`
	ProfileImageKey string                 `json:"profile_image_key,omitempty"`
	GalleryKeys     []string               `json:"gallery_keys,omitempty"`
	IsApproved      bool                   `json:"is_approved"`
	ProfileViews    int                    `json:"profile_views"`
	MonthlyChats    int                    `json:"monthly_chat_count"`
	TotalLeads      int                    `json:"total_leads"`
	MatchedLessons  int                    `json:"matched_lessons"`
	Rating          float64                `json:"rating"`
	Tier            enums.SubscriptionTier `json:"subscription_tier"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}
