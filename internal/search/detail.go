package search

import (
	"context"
	"errors"

	"findmyrave/internal/shared/constants"
	"findmyrave/internal/upstream"
	"findmyrave/pkg/metrics"
)

// GetEvent resolves one event by platform and platform id, cache-aside.
// A broken cache only costs a provider round-trip.
func (s *service) GetEvent(ctx context.Context, platform, id string) (*Event, error) {
	if platform != s.platform && platform != PlatformLocal {
		return nil, ErrUnknownPlatform
	}
	if platform == PlatformLocal && s.local == nil {
		return nil, ErrUnknownPlatform
	}

	key := constants.BuildEventDetailKey(platform, id)

	var event Event
	hit, err := s.cache.GetOrSet(ctx, key, s.detailTTL, &event, func() (interface{}, error) {
		return s.resolve(ctx, platform, id)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordDetailLookup(platform, hit)
	s.logger.LogCacheResult(ctx, key, hit)

	return &event, nil
}

func (s *service) resolve(ctx context.Context, platform, id string) (*Event, error) {
	if platform == PlatformLocal {
		return s.local.GetApproved(ctx, id)
	}

	raw, err := s.provider.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, upstream.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	event, err := Shape(*raw, s.platform)
	if err != nil {
		return nil, err
	}
	return &event, nil
}
