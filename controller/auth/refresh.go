package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todoapp/dto"
	"todoapp/middleware"
	"todoapp/model"
	"todoapp/services"
)

func RefreshTokenController(router *gin.Engine, db *gorm.DB) {
	router.POST("/auth/refresh", middleware.RefreshTokenMiddleware(), func(c *gin.Context) {
		RefreshToken(c, db)
	})
}

// RefreshToken rotates the token pair: the presented refresh token must
// match the stored hash and not be revoked or expired.
func RefreshToken(c *gin.Context, db *gorm.DB) {
	userID := c.MustGet("userId").(string)
	presented := c.MustGet("refreshToken").(string)

	var record model.RefreshToken
	err := db.WithContext(c.Request.Context()).First(&record, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No refresh token on record"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load refresh token"})
		return
	}

	if record.Revoked || time.Now().After(record.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token is revoked or expired"})
		return
	}
	if err := services.CompareRefreshToken(record.TokenHash, presented); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token does not match"})
		return
	}

	users := services.NewUserService(db)
	user, err := users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
		return
	}

	accessToken, err := services.CreateAccessToken(user.UserID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}
	refreshToken, err := services.CreateRefreshToken(user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create refresh token"})
		return
	}
	hashed, err := services.HashRefreshToken(refreshToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash refresh token"})
		return
	}

	record.TokenHash = hashed
	record.CreatedAt = time.Now()
	record.ExpiresAt = time.Now().Add(7 * 24 * time.Hour)
	if err := db.WithContext(c.Request.Context()).Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": dto.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	})
}
