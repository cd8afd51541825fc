package search

import (
	"context"

	"findmyrave/internal/shared/config"
	"findmyrave/internal/upstream"
	"findmyrave/pkg/logger"
	"findmyrave/pkg/metrics"
)

// OffsetMode picks where an over-fetched genre page starts reading the provider
type OffsetMode string

const (
	// OffsetPage reads from the page's own offset, (page-1) x pageSize
	OffsetPage OffsetMode = "page"
	// OffsetStart always reads from offset 0 and slices the filtered result
	OffsetStart OffsetMode = "start"
)

const defaultInflation = 2

// Strategy parameterizes genre-filtered pagination
type Strategy struct {
	Inflation  int
	OffsetMode OffsetMode
}

func DefaultStrategy() Strategy {
	return Strategy{Inflation: defaultInflation, OffsetMode: OffsetPage}
}

// NewStrategy reads the strategy from config, falling back to defaults on bad values
func NewStrategy(cfg config.SearchConfig) Strategy {
	s := DefaultStrategy()
	if cfg.InflationFactor >= 1 {
		s.Inflation = cfg.InflationFactor
	}
	if OffsetMode(cfg.OffsetMode) == OffsetStart {
		s.OffsetMode = OffsetStart
	}
	return s
}

// Fetcher is the provider search call the estimator pages through
type Fetcher interface {
	Search(ctx context.Context, q upstream.Query) (*upstream.SearchResult, error)
}

// Page is one page of raw provider events plus its pagination block
type Page struct {
	Events     []upstream.RawEvent
	Pagination Pagination

	// bookkeeping for logs and tests
	RawFetched    int
	Matched       int
	ProviderTotal int
}

// Estimator fetches a page from the provider. Without a genre filter the
// provider total is exact. With one, the page is over-fetched, filtered, and
// the total is estimated from the observed match ratio.
type Estimator struct {
	fetcher  Fetcher
	strategy Strategy
	logger   *logger.Logger
}

func NewEstimator(fetcher Fetcher, strategy Strategy, log *logger.Logger) *Estimator {
	if strategy.Inflation < 1 {
		strategy.Inflation = defaultInflation
	}
	if strategy.OffsetMode != OffsetStart {
		strategy.OffsetMode = OffsetPage
	}
	return &Estimator{fetcher: fetcher, strategy: strategy, logger: log}
}

func (e *Estimator) Paginate(ctx context.Context, f Filters) (*Page, error) {
	if !f.HasGenreFilter() {
		return e.exactPage(ctx, f)
	}
	return e.estimatedPage(ctx, f)
}

func (e *Estimator) exactPage(ctx context.Context, f Filters) (*Page, error) {
	result, err := e.fetcher.Search(ctx, queryFor(f, (f.Page-1)*f.PageSize, f.PageSize))
	if err != nil {
		return nil, err
	}

	events := result.Events
	if len(events) > f.PageSize {
		events = events[:f.PageSize]
	}

	return &Page{
		Events:        events,
		Pagination:    newPagination(f.Page, f.PageSize, result.TotalCount),
		RawFetched:    len(result.Events),
		Matched:       len(result.Events),
		ProviderTotal: result.TotalCount,
	}, nil
}

func (e *Estimator) estimatedPage(ctx context.Context, f Filters) (*Page, error) {
	fetchLimit := f.PageSize * e.strategy.Inflation

	rawOffset := 0
	if e.strategy.OffsetMode == OffsetPage {
		rawOffset = (f.Page - 1) * f.PageSize
	}

	first, err := e.fetcher.Search(ctx, queryFor(f, rawOffset, fetchLimit))
	if err != nil {
		return nil, err
	}

	matched := FilterByGenre(first.Events, f.Genre)
	rawFetched := len(first.Events)
	providerTotal := first.TotalCount

	// One extra block for an under-filled first page, never more
	if len(matched) < f.PageSize && f.Page == 1 && providerTotal > fetchLimit {
		next, err := e.fetcher.Search(ctx, queryFor(f, rawOffset+fetchLimit, fetchLimit))
		if err != nil {
			metrics.SearchSupplementalFetches.WithLabelValues("failed").Inc()
			e.logger.WarnWithContext(ctx, "Supplemental fetch failed, serving first batch", map[string]interface{}{
				"genre": f.Genre,
				"error": err.Error(),
			})
		} else {
			metrics.SearchSupplementalFetches.WithLabelValues("success").Inc()
			matched = append(matched, FilterByGenre(next.Events, f.Genre)...)
			rawFetched += len(next.Events)
		}
	}

	estimatedTotal := 0
	if rawFetched > 0 {
		estimatedTotal = ceilDiv(providerTotal*len(matched), rawFetched)
		metrics.SearchMatchRatio.WithLabelValues(f.Genre).Observe(float64(len(matched)) / float64(rawFetched))
	}

	e.logger.LogSearchEstimate(ctx, f.Genre, f.Page, rawFetched, len(matched), providerTotal, estimatedTotal)

	startIndex := max((f.Page-1)*f.PageSize-rawOffset, 0)
	var events []upstream.RawEvent
	if startIndex < len(matched) {
		events = matched[startIndex:min(startIndex+f.PageSize, len(matched))]
	}

	return &Page{
		Events:        events,
		Pagination:    newPagination(f.Page, f.PageSize, estimatedTotal),
		RawFetched:    rawFetched,
		Matched:       len(matched),
		ProviderTotal: providerTotal,
	}, nil
}

func queryFor(f Filters, offset, limit int) upstream.Query {
	return upstream.Query{
		Offset:   offset,
		Limit:    limit,
		Order:    f.Order,
		Keyword:  f.Keyword,
		Location: f.Location,
		MinDate:  f.MinDate,
		MaxDate:  f.MaxDate,
	}
}
