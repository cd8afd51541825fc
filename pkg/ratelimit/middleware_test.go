package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestGetRateLimitType(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   RateLimitType
	}{
		{http.MethodGet, "/health", RateLimitTypeHealth},
		{http.MethodGet, "/metrics", RateLimitTypeHealth},
		{http.MethodGet, "/api/v1/events/search", RateLimitTypeSearch},
		{http.MethodGet, "/api/v1/events/:platform/:id", RateLimitTypeDetail},
		{http.MethodPost, "/api/v1/listings", RateLimitTypeSubmission},
		{http.MethodGet, "/api/v1/listings/mine", RateLimitTypeUser},
		{http.MethodGet, "/api/v1/me/bookmarks", RateLimitTypeUser},
		{http.MethodPatch, "/api/v1/admin/listings/:id/approve", RateLimitTypeAdmin},
		{http.MethodGet, "/api/v1/something", RateLimitTypeDefault},
	}

	for _, tt := range tests {
		if got := getRateLimitType(tt.method, tt.path); got != tt.want {
			t.Errorf("getRateLimitType(%s %s) = %s, want %s", tt.method, tt.path, got, tt.want)
		}
	}
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded for", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.1:1234", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.2"}, "10.0.0.1:1234", "198.51.100.2"},
		{"invalid forwarded falls back", map[string]string{"X-Forwarded-For": "garbage"}, "192.0.2.5:80", "192.0.2.5"},
		{"remote addr", nil, "192.0.2.9:5555", "192.0.2.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			c.Request = req

			if got := getClientIP(c); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestIsAllowed_WithoutRedis(t *testing.T) {
	rl := NewRateLimiter(nil, &Config{Enabled: true, WindowDuration: time.Minute, SearchRequests: 60})

	result, err := rl.IsAllowed(context.Background(), "203.0.113.7", RateLimitTypeSearch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Allowed || result.Limit != 60 {
		t.Errorf("expected allowed with limit 60, got %+v", result)
	}
}

func TestIsAllowed_Whitelisted(t *testing.T) {
	rl := NewRateLimiter(nil, &Config{Enabled: true, WhitelistedIPs: []string{"127.0.0.1"}, DefaultRequests: 5})

	result, err := rl.IsAllowed(context.Background(), "127.0.0.1", RateLimitTypeDefault)
	if err != nil || !result.Allowed {
		t.Errorf("expected whitelisted ip to pass, got %+v err=%v", result, err)
	}
}
