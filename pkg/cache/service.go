package cache

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error

	// Cache-aside helper: dest is filled from cache or from fetcher, whose result is stored
	GetOrSet(ctx context.Context, key string, ttl time.Duration, dest interface{}, fetcher func() (interface{}, error)) (hit bool, err error)

	Ping(ctx context.Context) error
}

type redisService struct {
	client *redis.Client
}

// NewRedisService returns a Service backed by Redis, values are JSON encoded
func NewRedisService(client *redis.Client) Service {
	return &redisService{client: client}
}

func (s *redisService) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	return nil
}

func (s *redisService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}

func (s *redisService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

func (s *redisService) DeletePattern(ctx context.Context, pattern string) error {
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan error: %w", err)
	}

	if len(keys) > 0 {
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("cache delete pattern error: %w", err)
		}
	}

	return nil
}

func (s *redisService) GetOrSet(ctx context.Context, key string, ttl time.Duration, dest interface{}, fetcher func() (interface{}, error)) (bool, error) {
	return getOrSet(ctx, s, key, ttl, dest, fetcher)
}

func (s *redisService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// getOrSet implements cache-aside on top of any Service. A failing cache never
// fails the lookup: read errors fall through to the fetcher and write errors are dropped.
func getOrSet(ctx context.Context, s Service, key string, ttl time.Duration, dest interface{}, fetcher func() (interface{}, error)) (bool, error) {
	if err := s.Get(ctx, key, dest); err == nil {
		return true, nil
	}
	// a failed decode may have left dest half filled
	resetDest(dest)

	data, err := fetcher()
	if err != nil {
		return false, err
	}

	_ = s.Set(ctx, key, data, ttl)

	// Round-trip through JSON so dest gets the same shape a cache hit would produce
	raw, err := json.Marshal(data)
	if err != nil {
		return false, fmt.Errorf("marshal fetched data error: %w", err)
	}
	return false, json.Unmarshal(raw, dest)
}

func resetDest(dest interface{}) {
	v := reflect.ValueOf(dest)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().SetZero()
	}
}
