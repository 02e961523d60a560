package model

import "time"

type LoginRequest struct {
	Birthday string `json:"birthday" binding:"required"`
}

type LoginResponse struct {
	Birthday    string `json:"birthday"`
	DisplayName string `json:"display_name"`
}

type LandingRequest struct {
	Birthday string `json:"birthday" binding:"required"`
}

// MessageView is a Message joined with its author's display name, for the
// board listing.
type MessageView struct {
	ID          string    `json:"id"`
	Time        time.Time `json:"time"`
	Text        string    `json:"text"`
	FilePath    string    `json:"file_path"`
	FileURL     string    `json:"file_url,omitempty"`
	Birthday    string    `json:"-"`
	DisplayName string    `json:"display_name"`
}

type AdminLoginRequest struct {
	SecretKey string `json:"secret_key" binding:"required"`
}

type AdminSummary struct {
	Users             int64 `json:"users"`
	Messages          int64 `json:"messages"`
	Bottles           int64 `json:"bottles"`
	BottleViews       int64 `json:"bottle_views"`
	Activity          int64 `json:"activity"`
	Visits            int64 `json:"visits"`
	ScheduledMessages int64 `json:"scheduled_messages"`
	Chronicles        int64 `json:"chronicles"`
}

type ScheduledMessageRequest struct {
	Kind      string `json:"kind" binding:"required"`
	Content   string `json:"content" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type ChronicleRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}
