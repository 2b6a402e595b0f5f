package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"todoapp/controller/respond"
	"todoapp/dto"
	"todoapp/model"
	"todoapp/services"
)

func OTPController(router *gin.Engine, db *gorm.DB) {
	routes := router.Group("/auth/password")
	{
		routes.POST("/otp", func(c *gin.Context) {
			RequestOTP(c, db)
		})
		routes.POST("/verify", func(c *gin.Context) {
			VerifyOTP(c, db)
		})
		routes.POST("/reset", func(c *gin.Context) {
			ResetPassword(c, db)
		})
	}
}

func RequestOTP(c *gin.Context, db *gorm.DB) {
	var request dto.RequestOTPRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only send codes for accounts that exist, but answer the same
	// either way so the endpoint cannot be used to probe emails.
	users := services.NewUserService(db)
	if _, err := users.GetByEmail(c.Request.Context(), request.Email); err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "OTP has been sent to your email"})
		return
	}

	otp := services.NewOTPService(db)
	ref, err := otp.Request(c.Request.Context(), request.Email)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP has been sent to your email",
		"ref":     ref,
	})
}

func VerifyOTP(c *gin.Context, db *gorm.DB) {
	var request dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	otp := services.NewOTPService(db)
	if err := otp.Verify(c.Request.Context(), request.Email, request.Ref, request.OTP); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully"})
}

func ResetPassword(c *gin.Context, db *gorm.DB) {
	var request dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	otp := services.NewOTPService(db)
	verified, err := otp.HasVerified(c.Request.Context(), request.Email)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if !verified {
		c.JSON(http.StatusForbidden, gin.H{"error": "OTP verification required before resetting the password"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	result := db.WithContext(c.Request.Context()).Model(&model.User{}).
		Where("email = ?", request.Email).
		Update("password", string(hashedPassword))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
