package cache

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// memoryService is the in-process fallback used when Redis is disabled
type memoryService struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryService returns a process-local Service with the same JSON semantics as Redis
func NewMemoryService() Service {
	return &memoryService{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *memoryService) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return ErrCacheMiss
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}
	return nil
}

func (m *memoryService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *memoryService) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	m.mu.Unlock()
	return nil
}

// DeletePattern accepts the same glob syntax as Redis SCAN MATCH for the subset path.Match supports
func (m *memoryService) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.entries {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return fmt.Errorf("cache delete pattern error: %w", err)
		}
		if matched {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *memoryService) GetOrSet(ctx context.Context, key string, ttl time.Duration, dest interface{}, fetcher func() (interface{}, error)) (bool, error) {
	return getOrSet(ctx, m, key, ttl, dest, fetcher)
}

func (m *memoryService) Ping(ctx context.Context) error {
	return nil
}
