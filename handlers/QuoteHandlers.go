package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"backend/models"
	"backend/repository"
	"backend/services"
	"backend/storage"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateQuote records a supplier's quote against an asset. The quote is
// stored as Submitted; Pending drafts are created through the supplier
// portal flow and never hit this endpoint.
// @Summary Submit quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Param body body models.QuoteCreateRequest true "Quote data"
// @Success 201 {object} models.Quote
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/quote_create [post]
func CreateQuote(db *sql.DB, emailService *services.EmailService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.QuoteCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON input", "details": err.Error()})
			return
		}
		if req.Cost < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cost must be non-negative"})
			return
		}
		if req.CostBreakdown != nil {
			b := req.CostBreakdown
			if b.Labor < 0 || b.Materials < 0 || b.Equipment < 0 || b.Other < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "cost breakdown components must be non-negative"})
				return
			}
		}
		if req.ResponseTimeHours != nil && *req.ResponseTimeHours < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "response_time_hours must be non-negative"})
			return
		}

		quote := models.Quote{
			QuoteNumber:       repository.GenerateQuoteNumber(),
			AssetID:           req.AssetID,
			SupplierID:        req.SupplierID,
			Cost:              req.Cost,
			CostBreakdown:     req.CostBreakdown,
			Status:            models.QuoteStatusSubmitted,
			ValidUntil:        req.ValidUntil,
			ResponseTimeHours: req.ResponseTimeHours,
			Notes:             req.Notes,
			CreatedAt:         time.Now(),
			UpdatedAt:         time.Now(),
		}

		var labor, materials, equipment, other interface{}
		if req.CostBreakdown != nil {
			labor = req.CostBreakdown.Labor
			materials = req.CostBreakdown.Materials
			equipment = req.CostBreakdown.Equipment
			other = req.CostBreakdown.Other
		}

		query := `
			INSERT INTO quotes (quote_number, asset_id, supplier_id, cost, labor_cost, materials_cost, equipment_cost, other_cost,
			                    status, valid_until, response_time_hours, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id
		`
		err := db.QueryRow(query,
			quote.QuoteNumber, quote.AssetID, quote.SupplierID, quote.Cost,
			labor, materials, equipment, other,
			quote.Status, quote.ValidUntil, quote.ResponseTimeHours, quote.Notes,
			quote.CreatedAt, quote.UpdatedAt,
		).Scan(&quote.ID)
		if err != nil {
			log.Printf("Error inserting quote: %v\n", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert quote", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, quote)

		go SaveActivityLog(storage.GetGormDB(), models.ActivityLog{
			EventContext: "Quote",
			EventName:    "Created",
			Description:  fmt.Sprintf("Quote %s submitted for asset %d", quote.QuoteNumber, quote.AssetID),
			HostName:     c.Request.Host,
			IPAddress:    c.ClientIP(),
		})

		if emailService != nil {
			go notifyQuoteReceived(db, emailService, quote)
		}
	}
}

// GetQuotesByAsset lists an asset's quotes with presentation fields
// already formatted for the UI.
// @Summary List asset quotes
// @Tags Quotes
// @Produce json
// @Param asset_id path int true "Asset ID"
// @Success 200 {array} object
// @Failure 500 {object} models.ErrorResponse
// @Router /api/quotes/{asset_id} [get]
func GetQuotesByAsset(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		assetID, err := strconv.Atoi(c.Param("asset_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset_id"})
			return
		}

		quotes, err := fetchQuotes(c, db, assetID)
		if err != nil {
			log.Printf("Error fetching quotes: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quotes", "details": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(quotes))
		for _, q := range quotes {
			row := gin.H{
				"quote":           q,
				"breakdown_label": services.FormatCostBreakdown(q.CostBreakdown),
				"validity_label":  services.FormatValidity(q.ValidUntil),
				"status_badge":    services.StatusBadge(q.Status),
			}
			if q.ResponseTimeHours != nil {
				row["response_time_label"] = services.FormatResponseTime(*q.ResponseTimeHours)
			}
			out = append(out, row)
		}

		c.JSON(http.StatusOK, out)
	}
}

// UpdateQuoteStatus accepts or rejects a quote and notifies the supplier.
// @Summary Update quote status
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path int true "Quote ID"
// @Param body body models.QuoteStatusUpdateRequest true "New status"
// @Success 200 {object} utils.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/quote_status/{id} [put]
func UpdateQuoteStatus(db *sql.DB, emailService *services.EmailService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote id"})
			return
		}

		var req models.QuoteStatusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON input", "details": err.Error()})
			return
		}
		if req.Status != models.QuoteStatusAccepted && req.Status != models.QuoteStatusRejected {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be Accepted or Rejected"})
			return
		}

		result, err := db.Exec(`UPDATE quotes SET status = $1, updated_at = $2 WHERE id = $3`,
			req.Status, time.Now(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quote", "details": err.Error()})
			return
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check rows affected", "details": err.Error()})
			return
		}
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
			return
		}

		utils.SuccessResponse(c, "Quote status updated", http.StatusOK)

		go SaveActivityLog(storage.GetGormDB(), models.ActivityLog{
			EventContext: "Quote",
			EventName:    req.Status,
			Description:  fmt.Sprintf("Quote %d marked %s", id, req.Status),
			HostName:     c.Request.Host,
			IPAddress:    c.ClientIP(),
		})

		if emailService != nil {
			go notifyQuoteStatusChanged(db, emailService, id, req.Status)
		}
	}
}

// fetchQuotes reuses the comparison store's query path for the plain
// listing endpoint.
func fetchQuotes(c *gin.Context, db *sql.DB, assetID int) ([]models.Quote, error) {
	ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
	defer cancel()

	return storage.NewQuoteStore(db).GetQuotesForAsset(ctx, assetID)
}

func notifyQuoteReceived(db *sql.DB, emailService *services.EmailService, quote models.Quote) {
	data, err := buildQuoteEmailData(db, quote.ID)
	if err != nil {
		log.Printf("Skipping quote-received email for quote %d: %v", quote.ID, err)
		return
	}
	data.QuoteStatus = quote.Status
	if err := emailService.SendQuoteReceived(*data); err != nil {
		log.Printf("Failed to send quote-received email for quote %d: %v", quote.ID, err)
	}
}

func notifyQuoteStatusChanged(db *sql.DB, emailService *services.EmailService, quoteID int, status string) {
	data, err := buildQuoteEmailData(db, quoteID)
	if err != nil {
		log.Printf("Skipping status email for quote %d: %v", quoteID, err)
		return
	}
	data.QuoteStatus = status
	if err := emailService.SendQuoteStatusChanged(*data); err != nil {
		log.Printf("Failed to send status email for quote %d: %v", quoteID, err)
	}
}

// buildQuoteEmailData joins the quote with its supplier, asset and
// project for template substitution.
func buildQuoteEmailData(db *sql.DB, quoteID int) (*models.EmailData, error) {
	query := `
		SELECT q.quote_number, q.cost, s.name, s.email, a.name, p.name
		FROM quotes q
		JOIN suppliers s ON q.supplier_id = s.supplier_id
		JOIN assets a ON q.asset_id = a.asset_id
		JOIN project p ON a.project_id = p.project_id
		WHERE q.id = $1
	`
	var data models.EmailData
	err := db.QueryRow(query, quoteID).Scan(&data.QuoteNumber, &data.QuoteCost,
		&data.SupplierName, &data.RecipientEmail, &data.AssetName, &data.ProjectName)
	if err != nil {
		return nil, err
	}
	data.RecipientName = data.SupplierName
	return &data, nil
}
