package search

import (
	"github.com/gin-gonic/gin"
)

func SetupSearchRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - search is open to anonymous visitors
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("/search", controller.SearchEvents)    // GET /api/v1/events/search - Search provider or local events
		publicEvents.GET("/genres", controller.GetGenres)       // GET /api/v1/events/genres - Supported genre filters
		publicEvents.GET("/:platform/:id", controller.GetEvent) // GET /api/v1/events/:platform/:id - Event details
	}
}
