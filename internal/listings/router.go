package listings

import (
	"findmyrave/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupListingRoutes registers submission and moderation routes. auth verifies the bearer token.
func SetupListingRoutes(router *gin.RouterGroup, controller Controller, auth gin.HandlerFunc) {
	// User routes - any authenticated user can submit
	userListings := router.Group("/listings")
	userListings.Use(auth)
	{
		userListings.POST("", controller.SubmitListing)     // POST /api/v1/listings - Submit an event for review
		userListings.GET("/mine", controller.GetMyListings) // GET /api/v1/listings/mine - Own submissions
	}

	// Admin routes - moderation
	adminListings := router.Group("/admin/listings")
	adminListings.Use(auth, middleware.RequireAdmin())
	{
		adminListings.GET("", controller.GetModerationQueue)           // GET /api/v1/admin/listings?status= - Moderation queue
		adminListings.PATCH("/:id/approve", controller.ApproveListing) // PATCH /api/v1/admin/listings/:id/approve - Approve
		adminListings.PATCH("/:id/reject", controller.RejectListing)   // PATCH /api/v1/admin/listings/:id/reject - Reject with reason
		adminListings.DELETE("/:id", controller.DeleteListing)         // DELETE /api/v1/admin/listings/:id - Remove a listing
	}
}
