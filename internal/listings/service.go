package listings

import (
	"context"
	"errors"
	"strings"
	"time"

	"findmyrave/internal/search"
	"findmyrave/internal/shared/constants"
	"findmyrave/pkg/cache"
	"findmyrave/pkg/logger"
	"findmyrave/pkg/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidDates  = errors.New("end date must not be before start date")
	ErrPastEvent     = errors.New("start date must be in the future")
	ErrUnknownGenre  = errors.New("unknown genre")
	ErrInvalidStatus = errors.New("invalid listing status")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	Submit(ctx context.Context, userID uuid.UUID, req CreateListingRequest) (*ListingResponse, error)
	GetMine(ctx context.Context, userID uuid.UUID) ([]ListingResponse, error)
	GetQueue(ctx context.Context, status string) ([]ListingResponse, error)
	Approve(ctx context.Context, id, adminID uuid.UUID) (*ListingResponse, error)
	Reject(ctx context.Context, id, adminID uuid.UUID, reason string) (*ListingResponse, error)
	Delete(ctx context.Context, id, adminID uuid.UUID) error
}

type service struct {
	repo         Repository
	publisher    Publisher
	cacheService cache.Service
	logger       *logger.Logger
	now          func() time.Time
}

func NewService(repo Repository, publisher Publisher, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) Submit(ctx context.Context, userID uuid.UUID, req CreateListingRequest) (*ListingResponse, error) {
	start := req.StartDate.UTC()
	end := start
	if req.EndDate != nil {
		end = req.EndDate.UTC()
	}
	if end.Before(start) {
		return nil, ErrInvalidDates
	}
	if !start.After(s.now()) {
		return nil, ErrPastEvent
	}

	genres := make([]string, 0, len(req.Genres))
	for _, g := range req.Genres {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == search.GenreAll || !search.IsKnownGenre(g) {
			return nil, ErrUnknownGenre
		}
		genres = append(genres, g)
	}

	listing := &Listing{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Location:    strings.TrimSpace(req.Location),
		Town:        strings.TrimSpace(req.Town),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageURL:    req.ImageURL,
		MinAge:      req.MinAge,
		EntryPrice:  req.EntryPrice,
		Genres:      genres,
		Link:        req.Link,
		Status:      ListingStatusPending,
		SubmittedBy: userID,
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.LogListingSubmitted(ctx, listing.ID.String(), userID.String())
	s.invalidateQueue(ctx)

	resp := listing.ToResponse()
	return &resp, nil
}

func (s *service) GetMine(ctx context.Context, userID uuid.UUID) ([]ListingResponse, error) {
	listings, err := s.repo.ListBySubmitter(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponses(listings), nil
}

// GetQueue lists listings by status for moderators, cached briefly
func (s *service) GetQueue(ctx context.Context, status string) ([]ListingResponse, error) {
	st := ListingStatus(status)
	if status != "" && !st.IsValid() {
		return nil, ErrInvalidStatus
	}

	fetch := func() (interface{}, error) {
		listings, err := s.repo.ListByStatus(ctx, st)
		if err != nil {
			return nil, err
		}
		return toResponses(listings), nil
	}

	if s.cacheService == nil {
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		return data.([]ListingResponse), nil
	}

	var queue []ListingResponse
	if _, err := s.cacheService.GetOrSet(ctx, constants.BuildListingQueueKey(status), constants.TTL_LISTING_QUEUE, &queue, fetch); err != nil {
		return nil, err
	}
	return queue, nil
}

func (s *service) Approve(ctx context.Context, id, adminID uuid.UUID) (*ListingResponse, error) {
	return s.moderate(ctx, id, adminID, ListingStatusApproved, "")
}

func (s *service) Reject(ctx context.Context, id, adminID uuid.UUID, reason string) (*ListingResponse, error) {
	return s.moderate(ctx, id, adminID, ListingStatusRejected, strings.TrimSpace(reason))
}

func (s *service) moderate(ctx context.Context, id, adminID uuid.UUID, status ListingStatus, reason string) (*ListingResponse, error) {
	listing, err := s.repo.Moderate(ctx, id, status, adminID, reason, s.now().UTC())
	if err != nil {
		return nil, err
	}

	decision := string(status)
	metrics.ListingModerations.WithLabelValues(decision).Inc()
	s.logger.LogListingModerated(ctx, id.String(), adminID.String(), decision)
	s.invalidateQueue(ctx)
	s.publish(ctx, listing, adminID, decision, reason)

	resp := listing.ToResponse()
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, id, adminID uuid.UUID) error {
	listing, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	metrics.ListingModerations.WithLabelValues("deleted").Inc()
	s.logger.LogListingModerated(ctx, id.String(), adminID.String(), "deleted")
	s.invalidateQueue(ctx)
	s.invalidateDetail(ctx, id)
	s.publish(ctx, listing, adminID, "deleted", "")
	return nil
}

// publish never fails the request: the decision is already committed
func (s *service) publish(ctx context.Context, listing *Listing, adminID uuid.UUID, decision, reason string) {
	event := ModerationEvent{
		ListingID:   listing.ID.String(),
		Title:       listing.Title,
		Decision:    decision,
		Reason:      reason,
		SubmittedBy: listing.SubmittedBy.String(),
		ReviewedBy:  adminID.String(),
		OccurredAt:  s.now().UTC(),
	}
	if err := s.publisher.PublishModeration(ctx, event); err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to publish moderation event", err, map[string]interface{}{
			"listing_id": event.ListingID,
			"decision":   decision,
		})
	}
}

func (s *service) invalidateQueue(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_LISTING_QUEUE); err != nil {
		s.logger.WarnWithContext(ctx, "Failed to invalidate listing queue cache", map[string]interface{}{"error": err.Error()})
	}
}

func (s *service) invalidateDetail(ctx context.Context, id uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildEventDetailKey(search.PlatformLocal, id.String())); err != nil {
		s.logger.WarnWithContext(ctx, "Failed to invalidate listing detail cache", map[string]interface{}{"error": err.Error()})
	}
}

func toResponses(listings []Listing) []ListingResponse {
	responses := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		responses = append(responses, listings[i].ToResponse())
	}
	return responses
}
