package listings

import (
	"time"

	"findmyrave/internal/search"
)

type ListingResponse struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	StartDate       time.Time     `json:"start_date"`
	EndDate         time.Time     `json:"end_date"`
	Location        string        `json:"location"`
	Town            string        `json:"town"`
	Latitude        float64       `json:"latitude"`
	Longitude       float64       `json:"longitude"`
	ImageURL        string        `json:"image_url"`
	MinAge          *int          `json:"min_age"`
	EntryPrice      float64       `json:"entry_price"`
	Genres          []string      `json:"genres"`
	Link            string        `json:"link"`
	Status          ListingStatus `json:"status"`
	SubmittedBy     string        `json:"submitted_by"`
	ReviewedBy      *string       `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time    `json:"reviewed_at,omitempty"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (l *Listing) ToResponse() ListingResponse {
	resp := ListingResponse{
		ID:              l.ID.String(),
		Title:           l.Title,
		Description:     l.Description,
		StartDate:       l.StartDate,
		EndDate:         l.EndDate,
		Location:        l.Location,
		Town:            l.Town,
		Latitude:        l.Latitude,
		Longitude:       l.Longitude,
		ImageURL:        l.ImageURL,
		MinAge:          l.MinAge,
		EntryPrice:      l.EntryPrice,
		Genres:          l.Genres,
		Link:            l.Link,
		Status:          l.Status,
		SubmittedBy:     l.SubmittedBy.String(),
		ReviewedAt:      l.ReviewedAt,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	if l.ReviewedBy != nil {
		reviewer := l.ReviewedBy.String()
		resp.ReviewedBy = &reviewer
	}
	if resp.Genres == nil {
		resp.Genres = []string{}
	}
	return resp
}

// ToEvent renders an approved listing in the same shape as provider events
func (l *Listing) ToEvent() search.Event {
	genres := l.Genres
	if genres == nil {
		genres = []string{}
	}
	return search.Event{
		ID:          l.ID.String(),
		Title:       l.Title,
		Description: l.Description,
		StartDate:   l.StartDate.UTC().Format(time.RFC3339),
		EndDate:     l.EndDate.UTC().Format(time.RFC3339),
		Location:    l.Location,
		Town:        l.Town,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		ImageURL:    l.ImageURL,
		MinAge:      l.MinAge,
		EntryPrice:  l.EntryPrice,
		Genres:      genres,
		Link:        l.Link,
		Platform:    search.PlatformLocal,
	}
}
