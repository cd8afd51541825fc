package listings

import (
	"context"
	"errors"
	"testing"
	"time"

	"findmyrave/internal/search"
	"findmyrave/internal/shared/constants"
	"findmyrave/pkg/cache"

	"github.com/google/uuid"
)

var serviceNow = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, publisher Publisher) (Service, Repository, cache.Service) {
	t.Helper()
	repo := NewRepository(newTestDB(t))
	svc := NewService(repo, publisher, discardLogger())
	svc.(*service).now = func() time.Time { return serviceNow }
	cacheService := cache.NewMemoryService()
	svc.SetCacheService(cacheService)
	return svc, repo, cacheService
}

func validRequest() CreateListingRequest {
	return CreateListingRequest{
		Title:     "  Basement Sessions ",
		StartDate: time.Date(2026, time.October, 24, 22, 0, 0, 0, time.UTC),
		Location:  "The Basement",
		Town:      "Sheffield",
		Genres:    []string{"Techno", "house"},
	}
}

func TestSubmit(t *testing.T) {
	svc, _, _ := newTestService(t, &recordingPublisher{})
	user := uuid.New()

	listing, err := svc.Submit(context.Background(), user, validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if listing.Status != ListingStatusPending || listing.Title != "Basement Sessions" {
		t.Errorf("unexpected listing %+v", listing)
	}
	if !listing.EndDate.Equal(listing.StartDate) {
		t.Errorf("expected end date to default to start date, got %v", listing.EndDate)
	}
	if listing.SubmittedBy != user.String() {
		t.Errorf("expected submitter %s, got %s", user, listing.SubmittedBy)
	}
	if len(listing.Genres) != 2 || listing.Genres[0] != "techno" {
		t.Errorf("expected normalized genres, got %v", listing.Genres)
	}
}

func TestSubmit_Rejections(t *testing.T) {
	svc, _, _ := newTestService(t, &recordingPublisher{})

	past := validRequest()
	past.StartDate = serviceNow.Add(-time.Hour)

	backwards := validRequest()
	end := backwards.StartDate.Add(-time.Hour)
	backwards.EndDate = &end

	badGenre := validRequest()
	badGenre.Genres = []string{"polka"}

	allGenre := validRequest()
	allGenre.Genres = []string{"all"}

	tests := []struct {
		name string
		req  CreateListingRequest
		want error
	}{
		{"past start", past, ErrPastEvent},
		{"end before start", backwards, ErrInvalidDates},
		{"unknown genre", badGenre, ErrUnknownGenre},
		{"all is not a genre", allGenre, ErrUnknownGenre},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Submit(context.Background(), uuid.New(), tt.req); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestModeration_PublishesDecisions(t *testing.T) {
	publisher := &recordingPublisher{}
	svc, _, _ := newTestService(t, publisher)
	admin := uuid.New()

	first, _ := svc.Submit(context.Background(), uuid.New(), validRequest())
	second, _ := svc.Submit(context.Background(), uuid.New(), validRequest())

	approved, err := svc.Approve(context.Background(), uuid.MustParse(first.ID), admin)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != ListingStatusApproved || approved.ReviewedBy == nil || *approved.ReviewedBy != admin.String() {
		t.Errorf("unexpected approved listing %+v", approved)
	}

	rejected, err := svc.Reject(context.Background(), uuid.MustParse(second.ID), admin, " not an event ")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.RejectionReason != "not an event" {
		t.Errorf("expected trimmed reason, got %q", rejected.RejectionReason)
	}

	if _, err := svc.Approve(context.Background(), uuid.MustParse(second.ID), admin); !errors.Is(err, ErrListingNotPending) {
		t.Errorf("expected ErrListingNotPending, got %v", err)
	}

	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.events))
	}
	if e := publisher.events[0]; e.Decision != "approved" || e.ListingID != first.ID || e.ReviewedBy != admin.String() {
		t.Errorf("unexpected first event %+v", e)
	}
	if e := publisher.events[1]; e.Decision != "rejected" || e.Reason != "not an event" {
		t.Errorf("unexpected second event %+v", e)
	}
}

func TestModeration_PublishFailureKeepsDecision(t *testing.T) {
	svc, repo, _ := newTestService(t, &recordingPublisher{err: errBrokerDown})

	submitted, _ := svc.Submit(context.Background(), uuid.New(), validRequest())
	id := uuid.MustParse(submitted.ID)

	if _, err := svc.Approve(context.Background(), id, uuid.New()); err != nil {
		t.Fatalf("expected approval to succeed, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), id)
	if stored.Status != ListingStatusApproved {
		t.Errorf("expected approved listing, got %s", stored.Status)
	}
}

func TestGetQueue_InvalidatedOnModeration(t *testing.T) {
	svc, _, cacheService := newTestService(t, &recordingPublisher{})

	submitted, _ := svc.Submit(context.Background(), uuid.New(), validRequest())

	queue, err := svc.GetQueue(context.Background(), "pending")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue) != 1 {
		t.Fatalf("expected 1 pending listing, got %d", len(queue))
	}

	var cached []ListingResponse
	if err := cacheService.Get(context.Background(), constants.BuildListingQueueKey("pending"), &cached); err != nil {
		t.Fatalf("expected queue to be cached: %v", err)
	}

	if _, err := svc.Approve(context.Background(), uuid.MustParse(submitted.ID), uuid.New()); err != nil {
		t.Fatalf("approve: %v", err)
	}

	queue, _ = svc.GetQueue(context.Background(), "pending")
	if len(queue) != 0 {
		t.Errorf("expected empty queue after approval, got %d", len(queue))
	}

	if _, err := svc.GetQueue(context.Background(), "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestDelete_InvalidatesDetailCache(t *testing.T) {
	publisher := &recordingPublisher{}
	svc, repo, cacheService := newTestService(t, publisher)
	listing := seedListing(t, repo, "Gone", "Leeds", ListingStatusApproved, 0)

	key := constants.BuildEventDetailKey(search.PlatformLocal, listing.ID.String())
	_ = cacheService.Set(context.Background(), key, listing.ToEvent(), time.Hour)

	if err := svc.Delete(context.Background(), listing.ID, uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var event search.Event
	if err := cacheService.Get(context.Background(), key, &event); !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("expected detail cache entry to be removed, got %v", err)
	}
	if len(publisher.events) != 1 || publisher.events[0].Decision != "deleted" {
		t.Errorf("expected a deleted event, got %+v", publisher.events)
	}
}
