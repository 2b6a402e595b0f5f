package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RefreshToken stores the bcrypt hash of the latest refresh token per user.
type RefreshToken struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	TokenHash string    `gorm:"not null" json:"-"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

type AccessClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
