package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"placepilot/internal/model"
	"placepilot/internal/service"
)

// RecommendHandler handles recommendation HTTP requests
type RecommendHandler struct {
	recommender *service.RecommendService
}

// NewRecommendHandler creates a new recommend handler
func NewRecommendHandler(recommender *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{recommender: recommender}
}

// Recommend handles POST /api/v1/places/recommend. Runs with the
// authenticated user's personalization when a token is present,
// anonymously otherwise.
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req model.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.recommender.GetRecommendations(
		c.Request.Context(), req.Query, req.Latitude, req.Longitude, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recommendation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}
