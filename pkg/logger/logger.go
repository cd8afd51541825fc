package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewWithHandler builds a Logger on top of an arbitrary handler (tests, custom sinks)
func NewWithHandler(handler slog.Handler) *Logger {
	return &Logger{Logger: slog.New(handler)}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Upstream logging methods

// LogUpstreamRequest logs a completed call to the events provider
func (l *Logger) LogUpstreamRequest(ctx context.Context, endpoint string, offset, limit, results int, duration time.Duration) {
	l.Logger.DebugContext(ctx,
		"Upstream Request",
		slog.String("endpoint", endpoint),
		slog.Int("offset", offset),
		slog.Int("limit", limit),
		slog.Int("results", results),
		slog.Duration("duration", duration),
	)
}

// LogUpstreamError logs a failed call to the events provider. The detail stays server-side.
func (l *Logger) LogUpstreamError(ctx context.Context, endpoint string, statusCode int, err error) {
	l.Logger.ErrorContext(ctx,
		"Upstream Error",
		slog.String("endpoint", endpoint),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
	)
}

// LogSearchEstimate logs the estimator's view of a genre-filtered page
func (l *Logger) LogSearchEstimate(ctx context.Context, genre string, page, rawFetched, matched, providerTotal, estimatedTotal int) {
	l.Logger.DebugContext(ctx,
		"Search Estimate",
		slog.String("genre", genre),
		slog.Int("page", page),
		slog.Int("raw_fetched", rawFetched),
		slog.Int("matched", matched),
		slog.Int("provider_total", providerTotal),
		slog.Int("estimated_total", estimatedTotal),
	)
}

// Cache logging methods

// LogCacheResult logs a cache hit or miss
func (l *Logger) LogCacheResult(ctx context.Context, key string, hit bool) {
	l.Logger.DebugContext(ctx,
		"Cache Lookup",
		slog.String("key", key),
		slog.Bool("hit", hit),
	)
}

// Business logic logging methods

// LogListingSubmitted logs when a user submits an event listing
func (l *Logger) LogListingSubmitted(ctx context.Context, listingID, userID string) {
	l.Logger.InfoContext(ctx,
		"Listing Submitted",
		slog.String("listing_id", listingID),
		slog.String("user_id", userID),
	)
}

// LogListingModerated logs an admin moderation decision
func (l *Logger) LogListingModerated(ctx context.Context, listingID, adminID, decision string) {
	l.Logger.InfoContext(ctx,
		"Listing Moderated",
		slog.String("listing_id", listingID),
		slog.String("admin_id", adminID),
		slog.String("decision", decision),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// WarnWithContext logs a warning with context
func (l *Logger) WarnWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.WarnContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}
