package models

import "time"

type ContentItem struct {
	ID             int64     `db:"id" json:"id"`
	ClientID       int64     `db:"client_id" json:"client_id"`
	Platform       string    `db:"platform" json:"platform"`
	Body           string    `db:"body" json:"body"`
	Hashtags       []string  `db:"hashtags" json:"hashtags"`
	Mentions       []string  `db:"mentions" json:"mentions"`
	ImageURL       string    `db:"image_url" json:"image_url"`
	VideoURL       string    `db:"video_url" json:"video_url"`
	ContentType    string    `db:"content_type" json:"content_type"`
	Status         string    `db:"status" json:"status"` // draft, scheduled, published, failed
	ExternalPostID string    `db:"external_post_id" json:"external_post_id"`
	LastError      string    `db:"last_error" json:"last_error"`
	ScheduledTime  time.Time `db:"scheduled_time" json:"scheduled_time"`
	PublishedAt    time.Time `db:"published_at" json:"published_at"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

const (
	ContentStatusDraft     = "draft"
	ContentStatusScheduled = "scheduled"
	ContentStatusPublished = "published"
	ContentStatusFailed    = "failed"
)

const (
	ContentTypeImage = "image"
	ContentTypeVideo = "video"
	ContentTypeReel  = "reel"
)

const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
)
