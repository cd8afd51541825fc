package search

import (
	"context"
	"time"

	"findmyrave/internal/upstream"
	"findmyrave/pkg/cache"
	"findmyrave/pkg/logger"
)

// Provider is the third-party events API
type Provider interface {
	Fetcher
	GetEvent(ctx context.Context, id string) (*upstream.RawEvent, error)
}

// LocalSource serves approved, user-submitted listings.
// Pagination against it is exact.
type LocalSource interface {
	SearchApproved(ctx context.Context, f Filters) ([]Event, int, error)
	GetApproved(ctx context.Context, id string) (*Event, error)
}

type Service interface {
	Search(ctx context.Context, f Filters) (*Response, error)
	GetEvent(ctx context.Context, platform, id string) (*Event, error)
}

type service struct {
	provider  Provider
	estimator *Estimator
	local     LocalSource
	cache     cache.Service
	platform  string
	detailTTL time.Duration
	logger    *logger.Logger
}

// NewService wires the provider pipeline. local may be nil, in which case
// platform=local is rejected as unknown.
func NewService(provider Provider, strategy Strategy, local LocalSource, cacheService cache.Service, platform string, detailTTL time.Duration, log *logger.Logger) Service {
	return &service{
		provider:  provider,
		estimator: NewEstimator(provider, strategy, log),
		local:     local,
		cache:     cacheService,
		platform:  platform,
		detailTTL: detailTTL,
		logger:    log,
	}
}

func (s *service) Search(ctx context.Context, f Filters) (*Response, error) {
	switch f.Platform {
	case s.platform:
		return s.searchProvider(ctx, f)
	case PlatformLocal:
		if s.local == nil {
			return nil, &ValidationError{Field: "platform", Message: "local listings are not available"}
		}
		return s.searchLocal(ctx, f)
	default:
		return nil, &ValidationError{Field: "platform", Message: "must be one of: " + s.platform + ", " + PlatformLocal}
	}
}

func (s *service) searchProvider(ctx context.Context, f Filters) (*Response, error) {
	page, err := s.estimator.Paginate(ctx, f)
	if err != nil {
		return nil, err
	}

	events, err := ShapeAll(page.Events, s.platform)
	if err != nil {
		return nil, err
	}

	return &Response{Events: events, Pagination: page.Pagination}, nil
}

func (s *service) searchLocal(ctx context.Context, f Filters) (*Response, error) {
	events, total, err := s.local.SearchApproved(ctx, f)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}

	return &Response{Events: events, Pagination: newPagination(f.Page, f.PageSize, total)}, nil
}
