package handlers

import (
	"database/sql"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// addLabel draws text onto the image below the QR code.
func addLabel(img *image.RGBA, x, y int, label string, bold bool) {
	col := color.RGBA{30, 30, 30, 255}
	face := inconsolata.Regular8x16
	if bold {
		face = inconsolata.Bold8x16
	}

	point := fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  point,
	}
	d.DrawString(label)
}

// GenerateAssetQRCode renders a labeled QR JPEG linking to an asset's
// comparison view, for printing on call sheets.
// @Summary Asset comparison QR code
// @Tags QR
// @Produce image/jpeg
// @Param asset_id path int true "Asset ID"
// @Success 200 {file} file "JPEG image"
// @Failure 404 {object} models.ErrorResponse
// @Router /api/asset_qr/{asset_id} [get]
func GenerateAssetQRCode(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		assetID, err := strconv.Atoi(c.Param("asset_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset_id"})
			return
		}

		var assetName string
		err = db.QueryRow(`SELECT name FROM assets WHERE asset_id = $1`, assetID).Scan(&assetName)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch asset", "details": err.Error()})
			return
		}

		base := os.Getenv("APP_BASE_URL")
		link := fmt.Sprintf("%s/compare/%d", base, assetID)

		qr, err := qrcode.New(link, qrcode.Medium)
		if err != nil {
			log.Printf("Failed to build QR code for asset %d: %v", assetID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
			return
		}
		qrImg := qr.Image(256)

		// Extra strip under the code for the asset label.
		canvas := image.NewRGBA(image.Rect(0, 0, 256, 300))
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
		draw.Draw(canvas, image.Rect(0, 0, 256, 256), qrImg, image.Point{}, draw.Over)
		addLabel(canvas, 10, 275, assetName, true)
		addLabel(canvas, 10, 292, fmt.Sprintf("Asset #%d", assetID), false)

		c.Header("Content-Type", "image/jpeg")
		if err := jpeg.Encode(c.Writer, canvas, &jpeg.Options{Quality: 90}); err != nil {
			log.Printf("Failed to encode QR JPEG for asset %d: %v", assetID, err)
		}
	}
}
