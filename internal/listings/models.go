package listings

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
)

func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingStatusPending, ListingStatusApproved, ListingStatusRejected:
		return true
	}
	return false
}

// Listing is a user-submitted event. Only approved listings are searchable.
type Listing struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	Location    string    `json:"location" gorm:"not null;size:255"`
	Town        string    `json:"town" gorm:"size:100;index"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ImageURL    string    `json:"image_url" gorm:"size:500"`
	MinAge      *int      `json:"min_age"`
	EntryPrice  float64   `json:"entry_price" gorm:"default:0;check:entry_price >= 0"`
	Genres      []string  `json:"genres" gorm:"serializer:json;type:text"`
	Link        string    `json:"link" gorm:"size:500"`

	Status          ListingStatus `json:"status" gorm:"type:varchar(20);default:'pending';not null"`
	SubmittedBy     uuid.UUID     `json:"submitted_by" gorm:"type:uuid;not null;index"`
	ReviewedBy      *uuid.UUID    `json:"reviewed_by" gorm:"type:uuid"`
	ReviewedAt      *time.Time    `json:"reviewed_at"`
	RejectionReason string        `json:"rejection_reason" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// SearchQuery selects approved listings for the public search
type SearchQuery struct {
	Keyword  string
	Location string
	Genre    string // empty matches every genre
	From     time.Time
	To       time.Time // exclusive, zero for no upper bound
	Offset   int
	Limit    int
}

// ModerationEvent is published for every moderation decision
type ModerationEvent struct {
	ListingID   string    `json:"listing_id"`
	Title       string    `json:"title"`
	Decision    string    `json:"decision"` // approved, rejected, deleted
	Reason      string    `json:"reason,omitempty"`
	SubmittedBy string    `json:"submitted_by"`
	ReviewedBy  string    `json:"reviewed_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
