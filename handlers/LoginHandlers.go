package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"backend/models"
	"backend/storage"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// LoginHandler authenticates a producer and opens a session.
// @Summary Login
// @Description Authenticate with email and password, returns access/refresh tokens and a session id.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/login [post]
func LoginHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON input", "details": err.Error()})
			return
		}

		user, err := storage.GetUserByEmail(db, req.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if user.Suspended {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			return
		}
		if !utils.ValidatePassword(user.Password, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		accessToken, err := utils.GenerateJWT(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token", "details": err.Error()})
			return
		}

		sessionID := uuid.NewString()
		refreshToken, err := utils.GenerateRefreshToken(user.Email, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token", "details": err.Error()})
			return
		}

		session := &models.Session{
			UserID:                user.ID,
			SessionID:             sessionID,
			HostName:              c.Request.Host,
			IPAddress:             c.ClientIP(),
			Timestamp:             time.Now(),
			ExpiresAt:             time.Now().Add(24 * time.Hour),
			RefreshToken:          refreshToken,
			RefreshTokenExpiresAt: time.Now().Add(15 * 24 * time.Hour),
		}
		if err := storage.SaveSession(db, session, true); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session", "details": err.Error()})
			return
		}

		user.Password = ""
		c.JSON(http.StatusOK, models.LoginResponse{
			Message:      "Login successful",
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			SessionID:    sessionID,
			User:         *user,
		})
	}
}

// RefreshTokenHandler exchanges a valid refresh token for a new access
// token. The refresh token must belong to a session that is still open.
// @Summary Refresh access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Success 200 {object} utils.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /api/refresh-token [post]
func RefreshTokenHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON input", "details": err.Error()})
			return
		}

		token, err := utils.ValidateJWT(req.RefreshToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token", "details": err.Error()})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims structure"})
			return
		}
		if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is not a refresh token"})
			return
		}
		email, _ := claims["email"].(string)
		sessionID, _ := claims["sessionId"].(string)
		if email == "" || sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token claims missing"})
			return
		}

		if _, err := storage.GetUserBySessionID(db, sessionID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session is no longer active", "details": err.Error()})
			return
		}

		accessToken, err := utils.GenerateJWT(email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Token refreshed", "access_token": accessToken})
	}
}

// ValidateSession checks that the Authorization header carries an active
// session and returns the producer behind it.
// @Summary Validate session
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /api/validate-session [post]
func ValidateSession(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := sessionIDFromHeader(c)
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization header is required"})
			return
		}

		user, err := storage.GetUserBySessionID(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Session valid", "user": user})
	}
}

// LogoutHandler closes the session named in the Authorization header.
// @Summary Logout
// @Tags Authentication
// @Produce json
// @Success 200 {object} utils.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/logout [post]
func LogoutHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := sessionIDFromHeader(c)
		if sessionID == "" {
			utils.ErrorResponse(c, "Authorization header is required", http.StatusBadRequest)
			return
		}

		if err := storage.DeleteSession(db, sessionID); err != nil {
			utils.ErrorResponse(c, "Failed to delete session", http.StatusInternalServerError)
			return
		}

		utils.SuccessResponse(c, "Logged out", http.StatusOK)
	}
}

func sessionIDFromHeader(c *gin.Context) string {
	token := c.GetHeader("Authorization")
	token = strings.TrimPrefix(token, "Bearer ")
	return strings.TrimSpace(token)
}
