package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"findmyrave/internal/upstream"
	"findmyrave/pkg/logger"
)

func discardLogger() *logger.Logger {
	return logger.NewWithHandler(slog.NewTextHandler(io.Discard, nil))
}

// fakeProvider answers searches through searchFn and records every query
type fakeProvider struct {
	mu       sync.Mutex
	queries  []upstream.Query
	searchFn func(q upstream.Query) (*upstream.SearchResult, error)

	events      map[string]upstream.RawEvent
	detailCalls int
}

func (f *fakeProvider) Search(_ context.Context, q upstream.Query) (*upstream.SearchResult, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	return f.searchFn(q)
}

func (f *fakeProvider) GetEvent(_ context.Context, id string) (*upstream.RawEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls++
	event, ok := f.events[id]
	if !ok {
		return nil, upstream.ErrEventNotFound
	}
	return &event, nil
}

// makeBatch builds n events starting at id offset; every matchEvery-th one is techno
func makeBatch(offset, n, matchEvery int) []upstream.RawEvent {
	batch := make([]upstream.RawEvent, 0, n)
	for i := 0; i < n; i++ {
		genre := "1" // house
		if matchEvery > 0 && i%matchEvery == 0 {
			genre = "48" // techno only
		}
		batch = append(batch, upstream.RawEvent{
			ID:         fmt.Sprintf("%d", offset+i),
			EventName:  fmt.Sprintf("Event %d", offset+i),
			StartDate:  "2026-10-16",
			Venue:      &upstream.Venue{Name: "Warehouse", Town: "Leeds"},
			EntryPrice: "£10.00",
			Genres:     []upstream.Genre{{GenreID: genre}},
		})
	}
	return batch
}
