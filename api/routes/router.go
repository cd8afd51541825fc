// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"findmyrave/internal/bookmarks"
	"findmyrave/internal/listings"
	"findmyrave/internal/search"
	"findmyrave/internal/shared/config"
	"findmyrave/internal/shared/database"
	"findmyrave/internal/shared/middleware"
	"findmyrave/pkg/cache"
	"findmyrave/pkg/logger"
	"findmyrave/pkg/metrics"

	"github.com/gin-gonic/gin"
)

const serviceName = "findmyrave-backend"

// Dependencies are the long-lived clients built in main
type Dependencies struct {
	Provider  search.Provider
	Cache     cache.Service
	Publisher listings.Publisher
	Logger    *logger.Logger
}

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	deps   Dependencies

	auth          gin.HandlerFunc
	listingRepo   listings.Repository
	searchService search.Service // For dependency injection
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, deps Dependencies) *Router {
	return &Router{
		config: cfg,
		db:     db,
		deps:   deps,
		auth:   middleware.JWTAuthWithConfig(cfg),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Listings first: search serves approved listings as platform=local
		r.setupListingRoutes(api)

		// Setup search routes (event search + detail lookup)
		r.setupSearchRoutes(api)

		// Bookmarks resolve events through the search service
		r.setupBookmarkRoutes(api)
	}
}

// setupHealthRoutes sets up health check, metrics and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		report := r.db.Health(c.Request.Context())
		if !database.Healthy(report) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "unhealthy",
				"components": report,
				"timestamp":  time.Now(),
				"service":    serviceName,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"components": report,
			"timestamp":  time.Now(),
			"service":    serviceName,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"platform":    r.config.Upstream.Platform,
			"redis_cache": r.db.Redis != nil,
			"timestamp":   time.Now(),
		})
	})

	engine.GET("/metrics", metrics.Handler())
}

// setupListingRoutes configures submission and moderation routes
func (r *Router) setupListingRoutes(rg *gin.RouterGroup) {
	r.listingRepo = listings.NewRepository(r.db.PostgreSQL)

	listingService := listings.NewService(r.listingRepo, r.deps.Publisher, r.deps.Logger)
	listingService.SetCacheService(r.deps.Cache)
	listingController := listings.NewController(listingService)

	listings.SetupListingRoutes(rg, listingController, r.auth)
}

// setupSearchRoutes configures the public event search
func (r *Router) setupSearchRoutes(rg *gin.RouterGroup) {
	var local search.LocalSource
	if r.listingRepo != nil {
		local = listings.NewSearchAdapter(r.listingRepo)
	}

	r.searchService = search.NewService(
		r.deps.Provider,
		search.NewStrategy(r.config.Search),
		local,
		r.deps.Cache,
		r.config.Upstream.Platform,
		r.config.Redis.DetailCacheTTL,
		r.deps.Logger,
	)
	normalizer := search.NewNormalizer(r.config.Search, r.config.Upstream.Platform)
	searchController := search.NewController(r.searchService, normalizer, r.deps.Logger)

	search.SetupSearchRoutes(rg, searchController)
}

// setupBookmarkRoutes configures a user's saved events
func (r *Router) setupBookmarkRoutes(rg *gin.RouterGroup) {
	bookmarkRepo := bookmarks.NewRepository(r.db.PostgreSQL)
	bookmarkService := bookmarks.NewService(bookmarkRepo, r.searchService, r.deps.Logger)
	bookmarkService.SetCacheService(r.deps.Cache)
	bookmarkController := bookmarks.NewController(bookmarkService)

	bookmarks.SetupBookmarkRoutes(rg, bookmarkController, r.auth)
}
