package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"backend/models"
	"backend/services"
	"backend/storage"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// GetQuoteComparison returns the ranked quote comparison for one asset.
// Every failure path is mapped to the response envelope; this handler
// never surfaces a raw error to its caller.
// @Summary Compare quotes for an asset
// @Description Ranks all submitted quotes for the asset by cost and returns aggregate metrics. Fails with NO_QUOTES when the asset has no submitted quotes.
// @Tags Comparison
// @Produce json
// @Param asset_id path int true "Asset ID"
// @Success 200 {object} models.QuoteComparisonResponse
// @Failure 404 {object} models.QuoteComparisonResponse
// @Failure 500 {object} models.QuoteComparisonResponse
// @Router /api/compare/{asset_id} [get]
func GetQuoteComparison(store storage.QuoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		assetID, err := strconv.Atoi(c.Param("asset_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, comparisonError(models.ErrCodeAPI, "invalid asset id", err.Error()))
			return
		}

		asset, project, quotes, err := fetchComparisonSnapshot(c.Request.Context(), store, assetID)
		if err != nil {
			if errors.Is(err, storage.ErrAssetNotFound) {
				c.JSON(http.StatusNotFound, comparisonError(models.ErrCodeNotFound, "asset not found", ""))
				return
			}
			c.JSON(http.StatusInternalServerError, comparisonError(models.ErrCodeAPI, "failed to fetch quotes", err.Error()))
			return
		}

		ranked, metrics, err := services.CalculateCostMetrics(quotes)
		if err != nil {
			if errors.Is(err, services.ErrNoQuotes) {
				c.JSON(http.StatusOK, comparisonError(models.ErrCodeNoQuotes, "no quotes submitted for this asset yet", ""))
				return
			}
			c.JSON(http.StatusInternalServerError, comparisonError(models.ErrCodeAPI, "comparison failed", err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.QuoteComparisonResponse{
			Success: true,
			Data: &models.ComparisonData{
				Asset:             *asset,
				Project:           project,
				Quotes:            ranked,
				ComparisonMetrics: metrics,
			},
		})
	}
}

// GetQuoteSummary returns the dashboard summary for one asset. Unlike the
// full comparison it succeeds with zero quotes, so a badge can always
// render for brand-new assets.
// @Summary Quote summary for an asset
// @Tags Comparison
// @Produce json
// @Param asset_id path int true "Asset ID"
// @Success 200 {object} models.QuoteSummaryResponse
// @Failure 404 {object} models.QuoteSummaryResponse
// @Failure 500 {object} models.QuoteSummaryResponse
// @Router /api/compare/{asset_id}/summary [get]
func GetQuoteSummary(store storage.QuoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		assetID, err := strconv.Atoi(c.Param("asset_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, summaryError(models.ErrCodeAPI, "invalid asset id", err.Error()))
			return
		}

		_, _, quotes, err := fetchComparisonSnapshot(c.Request.Context(), store, assetID)
		if err != nil {
			if errors.Is(err, storage.ErrAssetNotFound) {
				c.JSON(http.StatusNotFound, summaryError(models.ErrCodeNotFound, "asset not found", ""))
				return
			}
			c.JSON(http.StatusInternalServerError, summaryError(models.ErrCodeAPI, "failed to fetch quotes", err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.QuoteSummaryResponse{
			Success: true,
			Data: &models.SummaryData{
				AssetID: assetID,
				Summary: services.SummarizeQuotes(quotes),
			},
		})
	}
}

// fetchComparisonSnapshot loads the asset context and its quotes. The two
// reads are independent, so they run concurrently; both must complete
// before any metric is computed.
func fetchComparisonSnapshot(ctx context.Context, store storage.QuoteStore, assetID int) (*models.Asset, *models.Project, []models.Quote, error) {
	queryCtx, cancel := utils.GetDefaultQueryContext(ctx)
	defer cancel()

	type assetResult struct {
		asset   *models.Asset
		project *models.Project
		err     error
	}
	type quotesResult struct {
		quotes []models.Quote
		err    error
	}

	assetCh := make(chan assetResult, 1)
	quotesCh := make(chan quotesResult, 1)

	go func() {
		asset, project, err := store.GetAssetWithProject(queryCtx, assetID)
		assetCh <- assetResult{asset, project, err}
	}()
	go func() {
		quotes, err := store.GetQuotesForAsset(queryCtx, assetID)
		quotesCh <- quotesResult{quotes, err}
	}()

	ar := <-assetCh
	qr := <-quotesCh

	if ar.err != nil {
		return nil, nil, nil, ar.err
	}
	if qr.err != nil {
		return nil, nil, nil, qr.err
	}
	return ar.asset, ar.project, qr.quotes, nil
}

func comparisonError(code, message, details string) models.QuoteComparisonResponse {
	return models.QuoteComparisonResponse{
		Success: false,
		Error:   &models.APIError{Code: code, Message: message, Details: details},
	}
}

func summaryError(code, message, details string) models.QuoteSummaryResponse {
	return models.QuoteSummaryResponse{
		Success: false,
		Error:   &models.APIError{Code: code, Message: message, Details: details},
	}
}
