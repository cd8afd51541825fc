package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"limit_type"},
	)

	// Upstream events provider
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of calls to the events provider",
		},
		[]string{"endpoint", "outcome"}, // outcome: success, http_error, transport_error, decode_error, rejected
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of calls to the events provider",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	// Search estimator
	SearchSupplementalFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_supplemental_fetches_total",
			Help: "Supplemental upstream fetches issued for under-filled genre pages",
		},
		[]string{"outcome"}, // success, failed
	)

	SearchMatchRatio = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_genre_match_ratio",
			Help:    "Fraction of a sampled upstream batch that survived genre filtering",
			Buckets: []float64{0, 0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1},
		},
		[]string{"genre"},
	)

	// Detail cache
	DetailCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "detail_cache_requests_total",
			Help: "Event detail lookups by cache result",
		},
		[]string{"platform", "result"}, // hit, miss
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Listings
	ListingModerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_moderations_total",
			Help: "Moderation decisions on user-submitted listings",
		},
		[]string{"decision"},
	)
)

// RecordAPIRequest records API request metrics
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordUpstreamRequest records one provider call
func RecordUpstreamRequest(endpoint, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordDetailLookup records a detail cache hit or miss
func RecordDetailLookup(platform string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	DetailCacheRequests.WithLabelValues(platform, result).Inc()
}

// Middleware records request count and latency per matched route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		RecordAPIRequest(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// Handler exposes the default registry in Prometheus text format
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
