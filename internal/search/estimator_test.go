package search

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"testing"

	"findmyrave/internal/shared/config"
	"findmyrave/internal/upstream"
)

func filters(genre string, page, pageSize int) Filters {
	return Filters{Genre: genre, Page: page, PageSize: pageSize, Order: "date", Platform: "skiddle"}
}

func TestPaginate_ExactWithoutGenre(t *testing.T) {
	provider := &fakeProvider{searchFn: func(q upstream.Query) (*upstream.SearchResult, error) {
		return &upstream.SearchResult{Events: makeBatch(q.Offset, q.Limit, 0), TotalCount: 100}, nil
	}}

	page, err := NewEstimator(provider, DefaultStrategy(), discardLogger()).Paginate(context.Background(), filters(GenreAll, 1, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Pagination{CurrentPage: 1, TotalPages: 9, TotalResults: 100, HasMore: true}
	if page.Pagination != want {
		t.Errorf("expected %+v, got %+v", want, page.Pagination)
	}
	if len(page.Events) != 12 {
		t.Errorf("expected 12 events, got %d", len(page.Events))
	}
	if len(provider.queries) != 1 || provider.queries[0].Offset != 0 || provider.queries[0].Limit != 12 {
		t.Errorf("unexpected queries %+v", provider.queries)
	}
}

func TestPaginate_ExactOffsetForLaterPage(t *testing.T) {
	provider := &fakeProvider{searchFn: func(q upstream.Query) (*upstream.SearchResult, error) {
		return &upstream.SearchResult{Events: makeBatch(q.Offset, 4, 0), TotalCount: 100}, nil
	}}

	page, err := NewEstimator(provider, DefaultStrategy(), discardLogger()).Paginate(context.Background(), filters(GenreAll, 9, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.queries[0].Offset != 96 {
		t.Errorf("expected offset 96, got %d", provider.queries[0].Offset)
	}
	if page.Pagination.HasMore || page.Pagination.TotalPages != 9 {
		t.Errorf("expected last page, got %+v", page.Pagination)
	}
}

func TestPaginate_GenreWithSupplementalFetch(t *testing.T) {
	provider := &fakeProvider{searchFn: func(q upstream.Query) (*upstream.SearchResult, error) {
		// one in four events is techno
		return &upstream.SearchResult{Events: makeBatch(q.Offset, q.Limit, 4), TotalCount: 240}, nil
	}}

	page, err := NewEstimator(provider, DefaultStrategy(), discardLogger()).Paginate(context.Background(), filters("techno", 1, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(provider.queries) != 2 {
		t.Fatalf("expected initial and supplemental fetch, got %d", len(provider.queries))
	}
	if q := provider.queries[0]; q.Offset != 0 || q.Limit != 24 {
		t.Errorf("unexpected initial query %+v", q)
	}
	if q := provider.queries[1]; q.Offset != 24 || q.Limit != 24 {
		t.Errorf("unexpected supplemental query %+v", q)
	}

	want := Pagination{CurrentPage: 1, TotalPages: 5, TotalResults: 60, HasMore: true}
	if page.Pagination != want {
		t.Errorf("expected %+v, got %+v", want, page.Pagination)
	}
	if len(page.Events) != 12 || page.RawFetched != 48 || page.Matched != 12 {
		t.Errorf("expected 12 of 12 matched from 48 raw, got %d of %d from %d", len(page.Events), page.Matched, page.RawFetched)
	}
}

func TestPaginate_SupplementalFailureServesFirstBatch(t *testing.T) {
	provider := &fakeProvider{searchFn: func(q upstream.Query) (*upstream.SearchResult, error) {
		if q.Offset > 0 {
			return nil, &upstream.UpstreamError{Endpoint: "search", StatusCode: 503, Err: errors.New("unavailable")}
		}
		return &upstream.SearchResult{Events: makeBatch(q.Offset, q.Limit, 4), TotalCount: 240}, nil
	}}

	page, err := NewEstimator(provider, DefaultStrategy(), discardLogger()).Paginate(context.Background(), filters("techno", 1, 12))
	if err != nil {
		t.Fatalf("expected degraded page, got error %v", err)
	}

	want := Pagination{CurrentPage: 1, TotalPages: 5, TotalResults: 60, HasMore: true}
	if page.Pagination != want {
		t.Errorf("expected %+v, got %+v", want, page.Pagination)
	}
	if len(page.Events) != 6 {
		t.Errorf("expected 6 events from the first batch, got %d", len(page.Events))
	}
}

func TestPaginate_InitialFailureIsReturned(t *testing.T) {
	upErr := &upstream.UpstreamError{Endpoint: "search", StatusCode: 503, Err: errors.New("unavailable")}
	provider := &fakeProvider{searchFn: func(q upstream.Query) (*upstream.SearchResult, error) {
		return nil, upErr
	}}

	_, err := NewEstimator(provider, DefaultStrategy(), discardLogger()).Paginate(context.Background(), filters("techno", 1, 12))
	if !errors.Is(err, upErr) {
		t.Errorf("expected upstream error, got %v", err)
	}
	if len(provider.queries) != 1 {
		t.Errorf("expected a single attempt, got %d", len(provider.queries))
	}
}

func TestPaginate_NoSupplementalWhenProviderIsExhausted(t *testing.T) {
	provider := &fakeProvider{searchFn: func(q upstream.Query) (*upstream.SearchResult, error) {
		return &upstream.SearchResult{Events: makeBatch(0, 20, 4), TotalCount: 20}, nil
	}}

	page, err := NewEstimator(provider, DefaultStrategy(), discardLogger()).Paginate(context.Background(), filters("techno", 1, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(provider.queries) != 1 {
		t.Errorf("expected no supplemental fetch, got %d queries", len(provider.queries))
	}
	// 5 matches out of 20 raw, 20 total
	if page.Pagination.TotalResults != 5 || page.Pagination.TotalPages != 1 || page.Pagination.HasMore {
		t.Errorf("unexpected pagination %+v", page.Pagination)
	}
}

func TestPaginate_NoSupplementalAfterFirstPage(t *testing.T) {
	provider := &fakeProvider{searchFn: func(q upstream.Query) (*upstream.SearchResult, error) {
		return &upstream.SearchResult{Events: makeBatch(q.Offset, q.Limit, 4), TotalCount: 240}, nil
	}}

	page, err := NewEstimator(provider, DefaultStrategy(), discardLogger()).Paginate(context.Background(), filters("techno", 2, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(provider.queries) != 1 {
		t.Fatalf("expected one fetch, got %d", len(provider.queries))
	}
	if q := provider.queries[0]; q.Offset != 12 || q.Limit != 24 {
		t.Errorf("expected page-offset query, got %+v", q)
	}
	if len(page.Events) != 6 || page.Pagination.CurrentPage != 2 || page.Pagination.TotalPages != 5 {
		t.Errorf("unexpected page %d events %+v", len(page.Events), page.Pagination)
	}
}

func TestPaginate_StartOffsetMode(t *testing.T) {
	provider := &fakeProvider{searchFn: func(q upstream.Query) (*upstream.SearchResult, error) {
		return &upstream.SearchResult{Events: makeBatch(q.Offset, q.Limit, 2), TotalCount: 500}, nil
	}}
	strategy := NewStrategy(config.SearchConfig{InflationFactor: 5, OffsetMode: "start"})

	page, err := NewEstimator(provider, strategy, discardLogger()).Paginate(context.Background(), filters("techno", 2, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q := provider.queries[0]; q.Offset != 0 || q.Limit != 50 {
		t.Errorf("expected start-offset query of 50, got %+v", q)
	}
	// 25 matches from offset 0; page 2 is matches 10..19, ids 20..38
	if len(page.Events) != 10 || page.Events[0].ID != "20" {
		t.Errorf("unexpected window: %d events starting at %v", len(page.Events), page.Events)
	}
	if page.Pagination.TotalResults != 250 {
		t.Errorf("expected estimate 250, got %d", page.Pagination.TotalResults)
	}
}

func TestPaginate_EmptyBatch(t *testing.T) {
	provider := &fakeProvider{searchFn: func(q upstream.Query) (*upstream.SearchResult, error) {
		return &upstream.SearchResult{TotalCount: 0}, nil
	}}

	page, err := NewEstimator(provider, DefaultStrategy(), discardLogger()).Paginate(context.Background(), filters("techno", 1, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Pagination{CurrentPage: 1, TotalPages: 1, TotalResults: 0, HasMore: false}
	if page.Pagination != want || len(page.Events) != 0 {
		t.Errorf("expected empty single page, got %+v with %d events", page.Pagination, len(page.Events))
	}
}

func TestPaginate_Idempotent(t *testing.T) {
	provider := &fakeProvider{searchFn: func(q upstream.Query) (*upstream.SearchResult, error) {
		return &upstream.SearchResult{Events: makeBatch(q.Offset, q.Limit, 3), TotalCount: 240}, nil
	}}
	estimator := NewEstimator(provider, DefaultStrategy(), discardLogger())
	f := filters("techno", 1, 12)

	first, err := estimator.Paginate(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := estimator.Paginate(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical pages for identical requests")
	}
}

func TestNewStrategy_FallsBackOnBadValues(t *testing.T) {
	s := NewStrategy(config.SearchConfig{InflationFactor: 0, OffsetMode: "sideways"})
	if s != DefaultStrategy() {
		t.Errorf("expected default strategy, got %+v", s)
	}
}

func TestPaginate_HighestPageKeepsOffsetsPositive(t *testing.T) {
	provider := &fakeProvider{searchFn: func(q upstream.Query) (*upstream.SearchResult, error) {
		return &upstream.SearchResult{Events: makeBatch(q.Offset, 0, 0), TotalCount: 1 << 40}, nil
	}}
	estimator := NewEstimator(provider, NewStrategy(config.SearchConfig{InflationFactor: 5}), discardLogger())

	for _, query := range []string{"page=10000&limit=24&genre=techno", "page=10000&limit=24"} {
		values, _ := url.ParseQuery(query)
		f, err := newTestNormalizer().Normalize(values, wednesday)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", query, err)
		}
		if _, err := estimator.Paginate(context.Background(), f); err != nil {
			t.Fatalf("%s: unexpected error: %v", query, err)
		}
	}

	for _, q := range provider.queries {
		if q.Offset < 0 || q.Limit <= 0 {
			t.Errorf("invalid provider window offset=%d limit=%d", q.Offset, q.Limit)
		}
	}
}
