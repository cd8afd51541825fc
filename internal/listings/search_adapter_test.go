package listings

import (
	"context"
	"errors"
	"testing"
	"time"

	"findmyrave/internal/search"
)

func TestSearchAdapter_SearchApproved(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	seedListing(t, repo, "Techno Bunker", "Leeds", ListingStatusApproved, 0, "techno")
	seedListing(t, repo, "House Party", "Leeds", ListingStatusApproved, 1, "house")
	seedListing(t, repo, "Yesterday", "Leeds", ListingStatusApproved, -2, "techno")

	adapter := NewSearchAdapter(repo)
	adapter.now = func() time.Time { return time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC) }

	events, total, err := adapter.SearchApproved(context.Background(), search.Filters{
		Genre:    "techno",
		Page:     1,
		PageSize: 12,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(events) != 1 {
		t.Fatalf("expected only the upcoming techno listing, got %d/%d", len(events), total)
	}
	if events[0].Platform != search.PlatformLocal || events[0].StartDate != "2026-10-16T22:00:00Z" {
		t.Errorf("unexpected event %+v", events[0])
	}

	events, total, _ = adapter.SearchApproved(context.Background(), search.Filters{
		Genre:    search.GenreAll,
		Page:     1,
		PageSize: 12,
		MinDate:  "2026-10-14",
		MaxDate:  "2026-10-16",
	})
	if total != 2 || len(events) != 2 || events[0].Title != "Yesterday" {
		t.Errorf("expected explicit bounds to include past listings, got %+v", events)
	}
}

func TestSearchAdapter_GetApproved(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	approved := seedListing(t, repo, "Open", "Leeds", ListingStatusApproved, 0)
	pending := seedListing(t, repo, "Hidden", "Leeds", ListingStatusPending, 0)
	adapter := NewSearchAdapter(repo)

	event, err := adapter.GetApproved(context.Background(), approved.ID.String())
	if err != nil || event.Title != "Open" {
		t.Fatalf("unexpected result %+v, %v", event, err)
	}

	for _, id := range []string{pending.ID.String(), "not-a-uuid"} {
		if _, err := adapter.GetApproved(context.Background(), id); !errors.Is(err, search.ErrEventNotFound) {
			t.Errorf("%s: expected search.ErrEventNotFound, got %v", id, err)
		}
	}
}
