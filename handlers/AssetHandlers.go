package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"time"

	"backend/models"

	"github.com/gin-gonic/gin"
)

// CreateAsset adds a deliverable asset to a project.
// @Summary Create asset
// @Tags Assets
// @Accept json
// @Produce json
// @Param body body models.Asset true "Asset data"
// @Success 201 {object} models.Asset
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/asset_create [post]
func CreateAsset(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var asset models.Asset
		if err := c.ShouldBindJSON(&asset); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON input", "details": err.Error()})
			return
		}
		if asset.ProjectID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
			return
		}

		asset.CreatedAt = time.Now()
		asset.UpdatedAt = time.Now()
		if asset.Status == "" {
			asset.Status = "Open"
		}
		if asset.Quantity == 0 {
			asset.Quantity = 1
		}

		query := `
			INSERT INTO assets (project_id, name, description, category, quantity, specifications, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING asset_id
		`
		err := db.QueryRow(query,
			asset.ProjectID,
			asset.Name,
			asset.Description,
			asset.Category,
			asset.Quantity,
			asset.Specifications,
			asset.Status,
			asset.CreatedAt,
			asset.UpdatedAt,
		).Scan(&asset.AssetID)
		if err != nil {
			log.Printf("Error inserting asset: %v\n", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert asset", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, asset)
	}
}

// GetAssetsByProject lists all assets in a project.
// @Summary List project assets
// @Tags Assets
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {array} models.Asset
// @Failure 500 {object} models.ErrorResponse
// @Router /api/assets/{project_id} [get]
func GetAssetsByProject(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.Atoi(c.Param("project_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}

		query := `
			SELECT asset_id, project_id, name, description, category, quantity, specifications, status, created_at, updated_at
			FROM assets
			WHERE project_id = $1
			ORDER BY created_at ASC
		`
		rows, err := db.Query(query, projectID)
		if err != nil {
			log.Printf("Error fetching assets: %v", err)
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

		c.JSON(http.StatusOK, assets)
	}
}

// GetAsset returns one asset by id.
// @Summary Fetch asset
// @Tags Assets
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} models.Asset
// @Failure 404 {object} models.ErrorResponse
// @Router /api/asset_fetch/{id} [get]
func GetAsset(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
			return
		}

		var asset models.Asset
		query := `
			SELECT asset_id, project_id, name, description, category, quantity, specifications, status, created_at, updated_at
			FROM assets WHERE asset_id = $1
		`
		err = db.QueryRow(query, id).Scan(&asset.AssetID, &asset.ProjectID, &asset.Name,
			&asset.Description, &asset.Category, &asset.Quantity, &asset.Specifications,
			&asset.Status, &asset.CreatedAt, &asset.UpdatedAt)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch asset", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, asset)
	}
}
