package types

import "time"

type Announcement struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorID       string    `json:"author_id"`
	TargetAudience string    `json:"target_audience"`
	IsPinned       bool      `json:"is_pinned"`
	Views          int       `json:"views"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AnnouncementInput struct {
	Title          string `json:"title" validate:"required"`
	Content        string `json:"content" validate:"required"`
	TargetAudience string `json:"target_audience" validate:"required,oneof=all students staff"`
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
