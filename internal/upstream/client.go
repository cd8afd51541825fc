package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"findmyrave/internal/shared/config"
	"findmyrave/pkg/logger"
	"findmyrave/pkg/metrics"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	endpointSearch = "search"
	endpointDetail = "detail"
)

// Client talks to the third-party events provider. Every call is a single
// attempt; failures surface as *UpstreamError and are never retried.
type Client struct {
	baseURL    string
	apiKey     string
	radius     int
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *logger.Logger
}

func NewClient(cfg config.UpstreamConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		radius:     cfg.SearchRadius,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    newBreaker(log),
		logger:     log,
	}
}

// Search fetches one raw page of events and the provider-reported total
func (c *Client) Search(ctx context.Context, q Query) (*SearchResult, error) {
	start := time.Now()

	var resp searchResponse
	if err := c.get(ctx, endpointSearch, "/events/search/", c.searchParams(q), &resp); err != nil {
		return nil, err
	}

	c.logger.LogUpstreamRequest(ctx, endpointSearch, q.Offset, q.Limit, len(resp.Results), time.Since(start))

	return &SearchResult{
		Events:     resp.Results,
		TotalCount: int(resp.TotalCount),
	}, nil
}

// GetEvent fetches a single event by provider id
func (c *Client) GetEvent(ctx context.Context, id string) (*RawEvent, error) {
	var resp detailResponse
	err := c.get(ctx, endpointDetail, "/events/"+url.PathEscape(id)+"/", url.Values{
		"api_key":     {c.apiKey},
		"description": {"1"},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Results == nil || resp.Results.ID == "" {
		return nil, ErrEventNotFound
	}

	return resp.Results, nil
}

func (c *Client) searchParams(q Query) url.Values {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("offset", strconv.Itoa(q.Offset))
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("order", q.Order)
	params.Set("description", "1")
	params.Set("ticketsavailable", "1")

	// The provider has no free-text location field, the place name rides on the keyword
	keyword := strings.TrimSpace(strings.Join([]string{q.Keyword, q.Location}, " "))
	if keyword != "" {
		params.Set("keyword", keyword)
	}
	if q.Location != "" {
		params.Set("radius", strconv.Itoa(c.radius))
		params.Set("geodist", "1")
	}
	if q.MinDate != "" {
		params.Set("minDate", q.MinDate)
	}
	if q.MaxDate != "" {
		params.Set("maxDate", q.MaxDate)
	}

	return params
}

// get performs one GET through the circuit breaker and decodes a 2xx body into dest.
// Each call records exactly one outcome.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, dest interface{}) error {
	start := time.Now()
	outcome := "success"
	defer func() {
		metrics.RecordUpstreamRequest(endpoint, outcome, time.Since(start))
	}()

	_, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
		if err != nil {
			return nil, &UpstreamError{Endpoint: endpoint, Err: err}
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			outcome = "transport_error"
			return nil, &UpstreamError{Endpoint: endpoint, Err: err}
		}
		defer resp.Body.Close()

		if endpoint == endpointDetail && resp.StatusCode == http.StatusNotFound {
			outcome = "not_found"
			return nil, ErrEventNotFound
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			outcome = "http_error"
			io.Copy(io.Discard, resp.Body)
			return nil, &UpstreamError{
				Endpoint:   endpoint,
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("unexpected status %s", resp.Status),
			}
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			outcome = "transport_error"
			return nil, &UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: err}
		}
		if err := json.Unmarshal(data, dest); err != nil {
			outcome = "decode_error"
			return nil, &UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
		return data, nil
	})
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return err
		}
		if isRejected(err) {
			outcome = "rejected"
			err = &UpstreamError{Endpoint: endpoint, Err: err}
		}

		var upErr *UpstreamError
		if errors.As(err, &upErr) {
			c.logger.LogUpstreamError(ctx, endpoint, upErr.StatusCode, upErr.Err)
		}
		return err
	}

	return nil
}
