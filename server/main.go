package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"findmyrave/api/routes"
	"findmyrave/internal/listings"
	"findmyrave/internal/shared/config"
	"findmyrave/internal/shared/database"
	"findmyrave/internal/upstream"
	"findmyrave/pkg/cache"
	"findmyrave/pkg/logger"
	"findmyrave/pkg/metrics"
	"findmyrave/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load environment variables
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		// Check if we're in production/container mode
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	if cfg.Upstream.APIKey == "" {
		appLogger.Warn("UPSTREAM_API_KEY is not set, provider searches will be rejected upstream")
	}

	// Initialize DB
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Response cache: Redis when enabled, process memory otherwise
	var cacheService cache.Service
	if db.Redis != nil {
		cacheService = cache.NewRedisService(db.Redis)
	} else {
		cacheService = cache.NewMemoryService()
		appLogger.Info("Redis disabled: using in-memory cache")
	}

	// Moderation events
	var publisher listings.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := listings.NewKafkaPublisher(cfg.Kafka)
		if err != nil {
			appLogger.Error("Failed to initialize Kafka publisher", slog.Any("error", err))
			appLogger.Info("Continuing with log publisher - moderation events will not reach Kafka")
			publisher = listings.NewLogPublisher(appLogger)
		} else {
			publisher = kafkaPublisher
			appLogger.Info("Kafka publisher initialized",
				slog.Any("brokers", cfg.Kafka.Brokers),
				slog.String("topic", cfg.Kafka.ModerationTopic),
			)
		}
	} else {
		publisher = listings.NewLogPublisher(appLogger)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Error("Error closing moderation publisher", slog.Any("error", err))
		}
	}()

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.Redis != nil {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:            cfg.RateLimit.Enabled,
			WindowDuration:     cfg.RateLimit.WindowDuration,
			DefaultRequests:    cfg.RateLimit.DefaultRequests,
			SearchRequests:     cfg.RateLimit.SearchRequests,
			DetailRequests:     cfg.RateLimit.DetailRequests,
			SubmissionRequests: cfg.RateLimit.SubmissionRequests,
			AdminRequests:      cfg.RateLimit.AdminRequests,
			UserRequests:       cfg.RateLimit.UserRequests,
			HealthRequests:     cfg.RateLimit.HealthRequests,
			WhitelistedIPs:     cfg.RateLimit.WhitelistedIPs,
		}

		rateLimiter = ratelimit.NewRateLimiter(db.Redis, rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("search_requests", cfg.RateLimit.SearchRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	deps := routes.Dependencies{
		Provider:  upstream.NewClient(cfg.Upstream, appLogger),
		Cache:     cacheService,
		Publisher: publisher,
		Logger:    appLogger,
	}

	// Setup router with rate limiter
	router := setupRouter(cfg, db, deps, rateLimiter)

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("search", fmt.Sprintf("http://localhost:%s%s/events/search", cfg.Port, cfg.GetAPIBasePath())),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("built", BuildTime),
			slog.Bool("redis_cache", db.Redis != nil),
			slog.Bool("rate_limiting", rateLimiter != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, deps routes.Dependencies, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), metrics.Middleware(), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	// Initialize and setup routes
	appRouter := routes.NewRouter(cfg, db, deps)
	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)
		reqLogger := l.WithRequestID(requestID)

		c.Next()

		duration := time.Since(start)
		reqLogger.LogHTTPRequest(c, duration)
		if len(c.Errors) > 0 {
			reqLogger.LogHTTPError(c, c.Errors.Last(), c.Writer.Status())
		}
	}
}
