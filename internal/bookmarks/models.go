package bookmarks

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bookmark is a user's saved event with a snapshot of what it looked like when saved
type Bookmark struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_event,priority:1"`
	Platform  string    `json:"platform" gorm:"size:32;not null;uniqueIndex:idx_bookmarks_user_event,priority:2"`
	EventID   string    `json:"event_id" gorm:"size:128;not null;uniqueIndex:idx_bookmarks_user_event,priority:3"`
	Title     string    `json:"title" gorm:"size:255"`
	StartDate string    `json:"start_date" gorm:"size:64"`
	Town      string    `json:"town" gorm:"size:100"`
	ImageURL  string    `json:"image_url" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (b *Bookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type AddBookmarkRequest struct {
	Platform string `json:"platform" binding:"required,alphanum,max=32"`
	EventID  string `json:"eventId" binding:"required,max=128"`
}

type BookmarkResponse struct {
	ID        string    `json:"id"`
	Platform  string    `json:"platform"`
	EventID   string    `json:"eventId"`
	Title     string    `json:"title"`
	StartDate string    `json:"startDate"`
	Town      string    `json:"town"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func (b *Bookmark) ToResponse() BookmarkResponse {
	return BookmarkResponse{
		ID:        b.ID.String(),
		Platform:  b.Platform,
		EventID:   b.EventID,
		Title:     b.Title,
		StartDate: b.StartDate,
		Town:      b.Town,
		ImageURL:  b.ImageURL,
		CreatedAt: b.CreatedAt,
	}
}
