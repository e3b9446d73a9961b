package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"backend/models"
	"backend/services"
	"backend/storage"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"
)

// ExportComparisonXLSX streams the ranked comparison for one asset as an
// Excel workbook.
// @Summary Export comparison as XLSX
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param asset_id path int true "Asset ID"
// @Success 200 {file} file "XLSX file"
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/export_comparison/{asset_id} [get]
func ExportComparisonXLSX(store storage.QuoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		asset, ranked, metrics, ok := loadComparisonForExport(c, store)
		if !ok {
			return
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Comparison"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Rank", "Quote #", "Supplier", "Cost", "% of Lowest", "Breakdown", "Response Time", "Validity", "Status"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, rq := range ranked {
			values := []interface{}{
				rq.CostRank,
				rq.QuoteNumber,
				rq.SupplierName,
				rq.Cost,
				percentLabel(rq.CostPercentOfLowest),
				services.FormatCostBreakdown(rq.CostBreakdown),
				responseTimeLabel(rq.ResponseTimeHours),
				services.FormatValidity(rq.ValidUntil),
				rq.Status,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		summaryRow := len(ranked) + 3
		f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Lowest")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), metrics.LowestCost)
		f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+1), "Highest")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow+1), metrics.HighestCost)
		f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+2), "Average")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow+2), metrics.AverageCost)
		f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+3), "Range")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow+3), metrics.CostRange)

		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook", "details": err.Error()})
			return
		}

		filename := fmt.Sprintf("comparison_%d.xlsx", asset.AssetID)
		c.Header("Content-Disposition", "attachment;filename="+filename)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}

// ExportComparisonPDF renders the comparison as a PDF report with a QR
// deep link back to the comparison view.
// @Summary Export comparison as PDF
// @Tags Export
// @Produce application/pdf
// @Param asset_id path int true "Asset ID"
// @Success 200 {file} file "PDF file"
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/comparison_pdf/{asset_id} [get]
func ExportComparisonPDF(store storage.QuoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		asset, ranked, metrics, ok := loadComparisonForExport(c, store)
		if !ok {
			return
		}

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, "Quote Comparison")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, fmt.Sprintf("Asset: %s", asset.Name))
		pdf.Ln(10)

		pdf.SetFont("Arial", "B", 10)
		widths := []float64{14, 28, 48, 28, 26, 22, 24}
		headers := []string{"Rank", "Quote #", "Supplier", "Cost", "% of Lowest", "Resp. Time", "Status"}
		for i, h := range headers {
			pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 10)
		for _, rq := range ranked {
			pdf.CellFormat(widths[0], 8, strconv.Itoa(rq.CostRank), "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[1], 8, rq.QuoteNumber, "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[2], 8, rq.SupplierName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[3], 8, fmt.Sprintf("%.2f", rq.Cost), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[4], 8, percentLabel(rq.CostPercentOfLowest), "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[5], 8, responseTimeLabel(rq.ResponseTimeHours), "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[6], 8, rq.Status, "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
		}

		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 7, fmt.Sprintf("Lowest: %.2f    Highest: %.2f    Average: %.2f    Range: %.2f",
			metrics.LowestCost, metrics.HighestCost, metrics.AverageCost, metrics.CostRange))
		pdf.Ln(10)

		// QR deep link back to the live comparison view.
		if base := os.Getenv("APP_BASE_URL"); base != "" {
			link := fmt.Sprintf("%s/compare/%d", base, asset.AssetID)
			if png, err := qrcode.Encode(link, qrcode.Medium, 256); err == nil {
				opts := gofpdf.ImageOptions{ImageType: "PNG"}
				pdf.RegisterImageOptionsReader("compare-qr", opts, bytes.NewReader(png))
				pdf.ImageOptions("compare-qr", 10, pdf.GetY(), 30, 30, false, opts, 0, "")
			}
		}

		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build PDF", "details": err.Error()})
			return
		}

		filename := fmt.Sprintf("comparison_%d.pdf", asset.AssetID)
		c.Header("Content-Disposition", "attachment;filename="+filename)
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}

// loadComparisonForExport fetches and ranks the quotes, writing the
// error response itself when anything fails.
func loadComparisonForExport(c *gin.Context, store storage.QuoteStore) (*models.Asset, []models.RankedQuote, models.ComparisonMetrics, bool) {
	assetID, err := strconv.Atoi(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset_id"})
		return nil, nil, models.ComparisonMetrics{}, false
	}

	ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
	defer cancel()

	asset, _, err := store.GetAssetWithProject(ctx, assetID)
	if err != nil {
		if errors.Is(err, storage.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch asset", "details": err.Error()})
		}
		return nil, nil, models.ComparisonMetrics{}, false
	}

	quotes, err := store.GetQuotesForAsset(ctx, assetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quotes", "details": err.Error()})
		return nil, nil, models.ComparisonMetrics{}, false
	}

	ranked, metrics, err := services.CalculateCostMetrics(quotes)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No quotes to export for this asset"})
		return nil, nil, models.ComparisonMetrics{}, false
	}

	return asset, ranked, metrics, true
}

func percentLabel(p *int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d%%", *p)
}

func responseTimeLabel(hours *int) string {
	if hours == nil {
		return "-"
	}
	return services.FormatResponseTime(*hours)
}
