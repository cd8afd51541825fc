package listings

import (
	"context"
	"errors"
	"time"

	"findmyrave/internal/search"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// SearchAdapter exposes approved listings to the search service
type SearchAdapter struct {
	repo Repository
	now  func() time.Time
}

func NewSearchAdapter(repo Repository) *SearchAdapter {
	return &SearchAdapter{repo: repo, now: time.Now}
}

// SearchApproved applies the same filters as the provider search. Without a
// lower date bound only upcoming listings are returned.
func (a *SearchAdapter) SearchApproved(ctx context.Context, f search.Filters) ([]search.Event, int, error) {
	query := SearchQuery{
		Keyword:  f.Keyword,
		Location: f.Location,
		Offset:   (f.Page - 1) * f.PageSize,
		Limit:    f.PageSize,
	}
	if f.HasGenreFilter() {
		query.Genre = f.Genre
	}

	now := a.now().UTC()
	query.From = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if f.MinDate != "" {
		if d, err := time.Parse(dateLayout, f.MinDate); err == nil {
			query.From = d
		}
	}
	if f.MaxDate != "" {
		if d, err := time.Parse(dateLayout, f.MaxDate); err == nil {
			query.To = d.AddDate(0, 0, 1)
		}
	}

	listings, total, err := a.repo.SearchApproved(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	events := make([]search.Event, 0, len(listings))
	for i := range listings {
		events = append(events, listings[i].ToEvent())
	}
	return events, int(total), nil
}

// GetApproved hides anything that is not approved behind search.ErrEventNotFound
func (a *SearchAdapter) GetApproved(ctx context.Context, id string) (*search.Event, error) {
	listingID, err := uuid.Parse(id)
	if err != nil {
		return nil, search.ErrEventNotFound
	}

	listing, err := a.repo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, ErrListingNotFound) {
			return nil, search.ErrEventNotFound
		}
		return nil, err
	}
	if listing.Status != ListingStatusApproved {
		return nil, search.ErrEventNotFound
	}

	event := listing.ToEvent()
	return &event, nil
}
