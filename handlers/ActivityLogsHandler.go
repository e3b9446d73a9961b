package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SaveActivityLog writes one activity row. Failures are logged, not
// surfaced; audit writes never block the main mutation.
func SaveActivityLog(gdb *gorm.DB, entry models.ActivityLog) error {
	if gdb == nil {
		return nil
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := gdb.Create(&entry).Error; err != nil {
		log.Printf("Failed to save activity log (%s/%s): %v", entry.EventContext, entry.EventName, err)
		return err
	}
	return nil
}

// GetActivityLogs lists a project's activity, newest first.
// @Summary List activity logs
// @Tags ActivityLogs
// @Produce json
// @Param project_id path int true "Project ID"
// @Param limit query int false "Max rows (default 50)"
// @Success 200 {array} models.ActivityLog
// @Failure 500 {object} models.ErrorResponse
// @Router /api/activity_logs/{project_id} [get]
func GetActivityLogs(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.Atoi(c.Param("project_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}

		limit := 50
		if l := c.Query("limit"); l != "" {
			if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 500 {
				limit = parsed
			}
		}

		logs := []models.ActivityLog{}
		err = gdb.Where("project_id = ?", projectID).
			Order("created_at DESC").
			Limit(limit).
			Find(&logs).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity logs", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, logs)
	}
}
