package bookmarks

import (
	"context"
	"strings"

	"findmyrave/internal/search"
	"findmyrave/internal/shared/constants"
	"findmyrave/pkg/cache"
	"findmyrave/pkg/logger"

	"github.com/google/uuid"
)

// EventResolver looks up an event on any platform; the search service satisfies it
type EventResolver interface {
	GetEvent(ctx context.Context, platform, id string) (*search.Event, error)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	Add(ctx context.Context, userID uuid.UUID, req AddBookmarkRequest) (*BookmarkResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]BookmarkResponse, error)
	Remove(ctx context.Context, userID uuid.UUID, platform, eventID string) error
}

type service struct {
	repo         Repository
	events       EventResolver
	cacheService cache.Service
	logger       *logger.Logger
}

func NewService(repo Repository, events EventResolver, log *logger.Logger) Service {
	return &service{repo: repo, events: events, logger: log}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// Add resolves the event first so only real events can be saved
func (s *service) Add(ctx context.Context, userID uuid.UUID, req AddBookmarkRequest) (*BookmarkResponse, error) {
	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	eventID := strings.TrimSpace(req.EventID)

	exists, err := s.repo.Exists(ctx, userID, platform, eventID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyBookmarked
	}

	event, err := s.events.GetEvent(ctx, platform, eventID)
	if err != nil {
		return nil, err
	}

	bookmark := &Bookmark{
		UserID:    userID,
		Platform:  platform,
		EventID:   eventID,
		Title:     event.Title,
		StartDate: event.StartDate,
		Town:      event.Town,
		ImageURL:  event.ImageURL,
	}
	if err := s.repo.Create(ctx, bookmark); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)

	resp := bookmark.ToResponse()
	return &resp, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]BookmarkResponse, error) {
	fetch := func() (interface{}, error) {
		bookmarks, err := s.repo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		responses := make([]BookmarkResponse, 0, len(bookmarks))
		for i := range bookmarks {
			responses = append(responses, bookmarks[i].ToResponse())
		}
		return responses, nil
	}

	if s.cacheService == nil {
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		return data.([]BookmarkResponse), nil
	}

	var responses []BookmarkResponse
	if _, err := s.cacheService.GetOrSet(ctx, constants.BuildBookmarksKey(userID.String()), constants.TTL_BOOKMARKS, &responses, fetch); err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *service) Remove(ctx context.Context, userID uuid.UUID, platform, eventID string) error {
	if err := s.repo.Delete(ctx, userID, strings.ToLower(platform), eventID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *service) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildBookmarksKey(userID.String())); err != nil {
		s.logger.WarnWithContext(ctx, "Failed to invalidate bookmarks cache", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
	}
}
