package handlers

import (
	"net/http"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// DecomposeBrief forwards a producer brief to the external decomposition
// API and returns the proposed asset drafts. Drafts are not persisted;
// the producer reviews them and creates assets explicitly.
// @Summary Decompose a production brief into asset drafts
// @Tags Briefs
// @Accept json
// @Produce json
// @Param body body models.Brief true "Production brief"
// @Success 200 {object} models.BriefDecomposition
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/brief_decompose [post]
func DecomposeBrief(briefService *services.BriefService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if briefService == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Brief decomposition is not configured"})
			return
		}

		var brief models.Brief
		if err := c.ShouldBindJSON(&brief); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON input", "details": err.Error()})
			return
		}

		result, err := briefService.DecomposeBrief(c.Request.Context(), brief)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Decomposition failed", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
