package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"placepilot/internal/model"
	"placepilot/internal/repository"
	"placepilot/internal/service"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	booking *service.BookingService
	repo    *repository.PostgresRepository
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(booking *service.BookingService, repo *repository.PostgresRepository) *BookingHandler {
	return &BookingHandler{booking: booking, repo: repo}
}

// Evaluate handles POST /api/v1/booking/evaluate
func (h *BookingHandler) Evaluate(c *gin.Context) {
	var req model.BookingEvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	state := h.booking.EvaluateState(req.Place, req.Time, req.People, req.UserConfirmed)
	c.JSON(http.StatusOK, state)
}

// Create handles POST /api/v1/booking/create. The booking is recorded
// and a hand-off action returned; execution stays with the client.
func (h *BookingHandler) Create(c *gin.Context) {
	var req model.BookingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	state := h.booking.EvaluateState(req.Place, req.Time, req.People, true)
	if state.Status != service.BookingStatusReady {
		c.JSON(http.StatusBadRequest, state)
		return
	}

	action := h.booking.BuildAction(req.Place, req.Time, req.People)

	booking := &model.Booking{
		ID:        uuid.NewString(),
		UserID:    currentUserID(c),
		PlaceID:   req.Place.PlaceID,
		PlaceName: req.Place.Name,
		Address:   req.Place.Address,
		Time:      req.Time,
		People:    req.People,
		Provider:  action.Provider,
		ActionURL: action.ActionURL,
	}
	if err := h.repo.CreateBooking(c.Request.Context(), booking); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record booking: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.BookingCreateResponse{
		BookingID: booking.ID,
		Action:    action,
	})
}
