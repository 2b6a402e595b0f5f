package model

import "time"

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

type OTPRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"not null;index"`  // Email associated with OTP
	OTP       string    `gorm:"not null"`        // OTP code
	Reference string    `gorm:"not null;unique"` // Unique reference code
	IsUsed    bool      `gorm:"default:false"`   // Indicates if OTP is used
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null"` // OTP expiration time
}

func (OTPRecord) TableName() string {
	return "otp_records"
}

// EmailBlock throttles an address that asked for too many OTPs.
type EmailBlock struct {
	Email     string    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (EmailBlock) TableName() string {
	return "email_blocked"
}
