package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"backend/models"
	"backend/services"
	"backend/storage"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// GetProjectDashboard builds the per-project dashboard: every asset with
// its quote summary badge plus project totals. Summaries are computed
// through the Summary Aggregator, so zero-quote assets still render.
// @Summary Project dashboard
// @Tags Dashboard
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} models.ProjectDashboard
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/dashboard/{project_id} [get]
func GetProjectDashboard(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.Atoi(c.Param("project_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		var project models.Project
		var eventDate sql.NullTime
		err = db.QueryRowContext(ctx, `
			SELECT project_id, name, description, producer_id, event_date, status, budget, created_at, updated_at
			FROM project WHERE project_id = $1
		`, projectID).Scan(&project.ProjectID, &project.Name, &project.Description, &project.ProducerID,
			&eventDate, &project.Status, &project.Budget, &project.CreatedAt, &project.UpdatedAt)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project", "details": err.Error()})
			return
		}
		if eventDate.Valid {
			project.EventDate = &eventDate.Time
		}

		rows, err := db.QueryContext(ctx, `
			SELECT asset_id, project_id, name, description, category, quantity, specifications, status, created_at, updated_at
			FROM assets WHERE project_id = $1 ORDER BY created_at ASC
		`, projectID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assets", "details": err.Error()})
			return
		}
		defer rows.Close()

		assets := []models.Asset{}
		for rows.Next() {
			var asset models.Asset
			err := rows.Scan(&asset.AssetID, &asset.ProjectID, &asset.Name, &asset.Description,
				&asset.Category, &asset.Quantity, &asset.Specifications, &asset.Status,
				&asset.CreatedAt, &asset.UpdatedAt)
			if err != nil {
				log.Printf("Error scanning asset row: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process asset data"})
				return
			}
			assets = append(assets, asset)
		}
		if err := rows.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read assets", "details": err.Error()})
			return
		}

		store := storage.NewQuoteStore(db)
		dashboard := models.ProjectDashboard{
			Project:     project,
			Assets:      make([]models.AssetSummaryRow, 0, len(assets)),
			TotalAssets: len(assets),
		}
		for _, asset := range assets {
			quotes, err := store.GetQuotesForAsset(ctx, asset.AssetID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quotes", "details": err.Error()})
				return
			}
			summary := services.SummarizeQuotes(quotes)
			dashboard.TotalQuotes += summary.QuoteCount
			dashboard.Assets = append(dashboard.Assets, models.AssetSummaryRow{
				Asset:   asset,
				Summary: summary,
			})
		}

		c.JSON(http.StatusOK, dashboard)
	}
}
