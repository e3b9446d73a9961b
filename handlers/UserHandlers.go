package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"time"

	"backend/models"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateUser registers a producer account.
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Param body body models.User true "User data"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/create_user [post]
func CreateUser(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			models.User
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON input", "details": err.Error()})
			return
		}

		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password", "details": err.Error()})
			return
		}

		user := input.User
		user.CreatedAt = time.Now()
		user.UpdatedAt = time.Now()

		query := `
			INSERT INTO users (email, password, first_name, last_name, company_name, phone_no, suspended, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, false, $7, $8)
			RETURNING id
		`
		err = db.QueryRow(query, user.Email, hashed, user.FirstName, user.LastName,
			user.CompanyName, user.PhoneNo, user.CreatedAt, user.UpdatedAt).Scan(&user.ID)
		if err != nil {
			log.Printf("Error inserting user: %v\n", err)
			c.JSON(http.StatusConflict, gin.H{"error": "Failed to create user", "details": err.Error()})
			return
		}

		user.Password = ""
		c.JSON(http.StatusCreated, user)
	}
}

// GetUser returns one producer by id.
// @Summary Fetch user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /api/user_fetch/{id} [get]
func GetUser(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		var user models.User
		query := `
			SELECT id, email, first_name, last_name, company_name, phone_no, suspended, created_at, updated_at
			FROM users WHERE id = $1
		`
		err = db.QueryRow(query, id).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName,
			&user.CompanyName, &user.PhoneNo, &user.Suspended, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
