package listings

import (
	"errors"
	"net/http"

	"findmyrave/internal/shared/middleware"
	"findmyrave/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	SubmitListing(c *gin.Context)
	GetMyListings(c *gin.Context)
	GetModerationQueue(c *gin.Context)
	ApproveListing(c *gin.Context)
	RejectListing(c *gin.Context)
	DeleteListing(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) SubmitListing(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	listing, err := ctrl.service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Listing submitted for review", listing, nil)
}

func (ctrl *controller) GetMyListings(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	listings, err := ctrl.service.GetMine(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Listings retrieved successfully", listings, nil)
}

func (ctrl *controller) GetModerationQueue(c *gin.Context) {
	var query ListingQueueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	listings, err := ctrl.service.GetQueue(c.Request.Context(), query.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Listings retrieved successfully", listings, nil)
}

func (ctrl *controller) ApproveListing(c *gin.Context) {
	adminID, ok := authenticatedUser(c)
	if !ok {
		return
	}
	listingID, ok := listingIDParam(c)
	if !ok {
		return
	}

	listing, err := ctrl.service.Approve(c.Request.Context(), listingID, adminID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Listing approved", listing, nil)
}

func (ctrl *controller) RejectListing(c *gin.Context) {
	adminID, ok := authenticatedUser(c)
	if !ok {
		return
	}
	listingID, ok := listingIDParam(c)
	if !ok {
		return
	}

	var req RejectListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "A rejection reason is required", nil, err.Error())
		return
	}

	listing, err := ctrl.service.Reject(c.Request.Context(), listingID, adminID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Listing rejected", listing, nil)
}

func (ctrl *controller) DeleteListing(c *gin.Context) {
	adminID, ok := authenticatedUser(c)
	if !ok {
		return
	}
	listingID, ok := listingIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), listingID, adminID); err != nil {
		respondServiceError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Listing deleted", nil, nil)
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

func listingIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid listing ID", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrListingNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrListingNotPending):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrInvalidDates), errors.Is(err, ErrPastEvent),
		errors.Is(err, ErrUnknownGenre), errors.Is(err, ErrInvalidStatus):
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	default:
		_ = c.Error(err)
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to process listing", nil, nil)
	}
}
