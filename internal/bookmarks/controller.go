package bookmarks

import (
	"errors"
	"net/http"

	"findmyrave/internal/search"
	"findmyrave/internal/shared/middleware"
	"findmyrave/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	GetBookmarks(c *gin.Context)
	AddBookmark(c *gin.Context)
	RemoveBookmark(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetBookmarks(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	bookmarks, err := ctrl.service.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch bookmarks", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookmarks retrieved successfully", bookmarks, nil)
}

func (ctrl *controller) AddBookmark(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	var req AddBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	bookmark, err := ctrl.service.Add(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyBookmarked):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		case errors.Is(err, search.ErrEventNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
		case errors.Is(err, search.ErrUnknownPlatform):
			response.RespondJSON(c, "error", http.StatusBadRequest, "Unknown platform", nil, nil)
		default:
			_ = c.Error(err)
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to save bookmark", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Bookmark saved", bookmark, nil)
}

func (ctrl *controller) RemoveBookmark(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	err := ctrl.service.Remove(c.Request.Context(), userID, c.Param("platform"), c.Param("eventId"))
	if err != nil {
		if errors.Is(err, ErrBookmarkNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		_ = c.Error(err)
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to remove bookmark", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookmark removed", nil, nil)
}

func authenticatedUser(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := middleware.UserID(c)
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}
	return userID, true
}
