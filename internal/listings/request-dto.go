package listings

import "time"

type CreateListingRequest struct {
	Title       string     `json:"title" binding:"required,min=3,max=255"`
	Description string     `json:"description" binding:"max=5000"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
	Location    string     `json:"location" binding:"required,min=2,max=255"`
	Town        string     `json:"town" binding:"required,min=2,max=100"`
	Latitude    float64    `json:"latitude" binding:"omitempty,latitude"`
	Longitude   float64    `json:"longitude" binding:"omitempty,longitude"`
	ImageURL    string     `json:"image_url" binding:"omitempty,url,max=500"`
	MinAge      *int       `json:"min_age" binding:"omitempty,min=0,max=99"`
	EntryPrice  float64    `json:"entry_price" binding:"min=0"`
	Genres      []string   `json:"genres" binding:"max=5"`
	Link        string     `json:"link" binding:"omitempty,url,max=500"`
}

type RejectListingRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

type ListingQueueQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}
