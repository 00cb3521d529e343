package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"placepilot/internal/model"
	"placepilot/internal/repository"
)

// defaultAffinityBump is applied when an affinity request omits amount.
const defaultAffinityBump = 0.1

// UserHandler handles preference and history HTTP requests
type UserHandler struct {
	repo *repository.PostgresRepository
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo *repository.PostgresRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

// GetPreferences handles GET /api/v1/user/preferences
func (h *UserHandler) GetPreferences(c *gin.Context) {
	record, err := h.repo.GetPreferences(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get preferences: " + err.Error()})
		return
	}
	if record == nil {
		record = &model.UserPreferenceRecord{
			PlaceTypeAffinity: map[string]float64{},
			VisitedPlaces:     []string{},
		}
	}

	c.JSON(http.StatusOK, record)
}

// AddVisited handles POST /api/v1/user/visited
func (h *UserHandler) AddVisited(c *gin.Context) {
	var req model.VisitedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.repo.AddVisitedPlace(c.Request.Context(), currentUserID(c), req.PlaceName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record visit: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// BumpAffinity handles POST /api/v1/user/affinity
func (h *UserHandler) BumpAffinity(c *gin.Context) {
	var req model.AffinityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if !model.AllowedPlaceTypes[req.PlaceType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown place type: " + req.PlaceType})
		return
	}

	amount := defaultAffinityBump
	if req.Amount != nil {
		amount = *req.Amount
	}

	if err := h.repo.IncrementAffinity(c.Request.Context(), currentUserID(c), req.PlaceType, amount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update affinity: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
