package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateSupplier registers a supplier on the platform.
// @Summary Create supplier
// @Tags Suppliers
// @Accept json
// @Produce json
// @Param body body models.Supplier true "Supplier data"
// @Success 201 {object} models.Supplier
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/supplier_create [post]
func CreateSupplier(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var supplier models.Supplier
		if err := c.ShouldBindJSON(&supplier); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON input", "details": err.Error()})
			return
		}

		supplier.CreatedAt = time.Now()
		supplier.UpdatedAt = time.Now()
		if supplier.Status == "" {
			supplier.Status = "Active"
		}

		if err := gdb.Create(&supplier).Error; err != nil {
			log.Printf("Error inserting supplier: %v\n", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert supplier", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, supplier)

		SaveActivityLog(gdb, models.ActivityLog{
			EventContext: "Supplier",
			EventName:    "Create",
			Description:  "Create supplier " + supplier.Name,
			HostName:     c.Request.Host,
			IPAddress:    c.ClientIP(),
		})
	}
}

// UpdateSupplier updates a supplier by id.
// @Summary Update supplier
// @Tags Suppliers
// @Accept json
// @Produce json
// @Param id path int true "Supplier ID"
// @Param body body models.Supplier true "Supplier data"
// @Success 200 {object} models.Supplier
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/supplier_update/{id} [put]
func UpdateSupplier(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier id"})
			return
		}

		var existing models.Supplier
		if err := gdb.First(&existing, "supplier_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch supplier", "details": err.Error()})
			return
		}

		var update models.Supplier
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON input", "details": err.Error()})
			return
		}
		update.SupplierID = existing.SupplierID
		update.CreatedAt = existing.CreatedAt
		update.UpdatedAt = time.Now()

		if err := gdb.Save(&update).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplier", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, update)

		SaveActivityLog(gdb, models.ActivityLog{
			EventContext: "Supplier",
			EventName:    "Update",
			Description:  "Update supplier " + update.Name,
			HostName:     c.Request.Host,
			IPAddress:    c.ClientIP(),
		})
	}
}

// GetAllSuppliers lists suppliers, optionally filtered by category.
// @Summary List suppliers
// @Tags Suppliers
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {array} models.Supplier
// @Failure 500 {object} models.ErrorResponse
// @Router /api/suppliers [get]
func GetAllSuppliers(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		suppliers := []models.Supplier{}
		query := gdb.Order("name ASC")
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}

		if err := query.Find(&suppliers).Error; err != nil {
			log.Printf("Error fetching suppliers: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suppliers", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, suppliers)
	}
}

// GetSupplier returns one supplier by id.
// @Summary Fetch supplier
// @Tags Suppliers
// @Produce json
// @Param id path int true "Supplier ID"
// @Success 200 {object} models.Supplier
// @Failure 404 {object} models.ErrorResponse
// @Router /api/supplier_fetch/{id} [get]
func GetSupplier(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier id"})
			return
		}

		var supplier models.Supplier
		if err := gdb.First(&supplier, "supplier_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch supplier", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, supplier)
	}
}
