package search

import (
	"errors"
	"net/http"
	"time"

	"findmyrave/internal/shared/utils/response"
	"findmyrave/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	SearchEvents(c *gin.Context)
	GetEvent(c *gin.Context)
	GetGenres(c *gin.Context)
}

type controller struct {
	service    Service
	normalizer *Normalizer
	logger     *logger.Logger
	now        func() time.Time
}

func NewController(service Service, normalizer *Normalizer, log *logger.Logger) Controller {
	return &controller{
		service:    service,
		normalizer: normalizer,
		logger:     log,
		now:        time.Now,
	}
}

// SearchEvents answers with the bare {events, pagination} body on success
func (ctrl *controller) SearchEvents(c *gin.Context) {
	filters, err := ctrl.normalizer.Normalize(c.Request.URL.Query(), ctrl.now())
	if err != nil {
		ctrl.respondSearchError(c, err)
		return
	}

	result, err := ctrl.service.Search(c.Request.Context(), filters)
	if err != nil {
		ctrl.respondSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (ctrl *controller) GetEvent(c *gin.Context) {
	platform := c.Param("platform")
	id := c.Param("id")
	if id == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Event ID is required", nil, nil)
		return
	}

	event, err := ctrl.service.GetEvent(c.Request.Context(), platform, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownPlatform):
			response.RespondJSON(c, "error", http.StatusBadRequest, "Unknown platform", nil, nil)
		case errors.Is(err, ErrEventNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
		default:
			ctrl.logger.ErrorWithContext(c.Request.Context(), "Event lookup failed", err, map[string]interface{}{
				"platform": platform,
				"event_id": id,
			})
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch event", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

func (ctrl *controller) GetGenres(c *gin.Context) {
	response.RespondJSON(c, "success", http.StatusOK, "Genres retrieved successfully", Genres(), nil)
}

// respondSearchError keeps provider and shaping details out of the response body
func (ctrl *controller) respondSearchError(c *gin.Context, err error) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		response.RespondJSON(c, "error", http.StatusBadRequest, validationErr.Error(), nil, map[string]string{
			validationErr.Field: validationErr.Message,
		})
		return
	}

	ctrl.logger.ErrorWithContext(c.Request.Context(), "Event search failed", err, map[string]interface{}{
		"query": c.Request.URL.RawQuery,
	})
	response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch events", nil, nil)
}
