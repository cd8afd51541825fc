package bookmarks

import (
	"github.com/gin-gonic/gin"
)

func SetupBookmarkRoutes(router *gin.RouterGroup, controller Controller, auth gin.HandlerFunc) {
	me := router.Group("/me/bookmarks")
	me.Use(auth)
	{
		me.GET("", controller.GetBookmarks)                         // GET /api/v1/me/bookmarks - Saved events
		me.POST("", controller.AddBookmark)                         // POST /api/v1/me/bookmarks - Save an event
		me.DELETE("/:platform/:eventId", controller.RemoveBookmark) // DELETE /api/v1/me/bookmarks/:platform/:eventId - Unsave
	}
}
