package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/artfolio/internal/service"
)

// RecommendationHandler serves personalized recommendations.
type RecommendationHandler struct {
	recommendationService *service.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(recommendationService *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// GetRecommendations handles GET /api/v1/recommendations.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	result, err := h.recommendationService.Generate(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrHistoryUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"error": "Failed to generate recommendations: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
