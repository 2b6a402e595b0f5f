package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/smtp"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"todoapp/model"
)

const (
	otpLifetime   = 15 * time.Minute
	blockLifetime = 10 * time.Minute
	maxLiveOTPs   = 3
)

// OTPService runs the password-reset flow: issue a code, verify it,
// throttle addresses that ask too often.
type OTPService struct {
	db *gorm.DB
}

func NewOTPService(db *gorm.DB) *OTPService {
	return &OTPService{db: db}
}

// Request generates a new OTP + reference for the email, stores it and
// mails the code. Returns the reference the client echoes back later.
func (s *OTPService) Request(ctx context.Context, email string) (string, error) {
	blocked, err := s.isBlocked(ctx, email)
	if err != nil {
		return "", err
	}
	if blocked {
		return "", invalidf("too many OTP requests for %s, try again later", email)
	}

	var live int64
	err = s.db.WithContext(ctx).Model(&model.OTPRecord{}).
		Where("email = ? AND expires_at > ? AND is_used = ?", email, time.Now(), false).
		Count(&live).Error
	if err != nil {
		return "", fmt.Errorf("count live otps: %w", err)
	}
	if live >= maxLiveOTPs {
		if err := s.block(ctx, email); err != nil {
			return "", err
		}
		return "", invalidf("too many OTP requests for %s, try again later", email)
	}

	otp := GenerateOTP(6)
	ref := GenerateREF(8)
	record := model.OTPRecord{
		Email:     email,
		OTP:       otp,
		Reference: ref,
		ExpiresAt: time.Now().Add(otpLifetime),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("save otp record: %w", err)
	}

	body := GenerateEmailContent(otp, ref)
	if err := SendingEmail(email, "Password reset code", body); err != nil {
		return "", fmt.Errorf("send otp mail: %w", err)
	}
	return ref, nil
}

// Verify marks a live, unused OTP record as used.
func (s *OTPService) Verify(ctx context.Context, email, ref, otp string) error {
	var record model.OTPRecord
	err := s.db.WithContext(ctx).
		Where("email = ? AND reference = ?", email, ref).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("no OTP issued for reference %s", ref)
	}
	if err != nil {
		return fmt.Errorf("load otp record: %w", err)
	}

	if record.IsUsed {
		return invalidf("OTP was already used")
	}
	if time.Now().After(record.ExpiresAt) {
		return invalidf("OTP has expired")
	}
	if record.OTP != otp {
		return invalidf("OTP does not match")
	}

	record.IsUsed = true
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("save otp record: %w", err)
	}
	return nil
}

// HasVerified reports whether the email cleared OTP verification
// recently enough to allow a password reset.
func (s *OTPService) HasVerified(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.OTPRecord{}).
		Where("email = ? AND is_used = ? AND expires_at > ?", email, true, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check otp verification: %w", err)
	}
	return count > 0, nil
}

func (s *OTPService) isBlocked(ctx context.Context, email string) (bool, error) {
	var block model.EmailBlock
	err := s.db.WithContext(ctx).First(&block, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load email block: %w", err)
	}

	if time.Now().Before(block.ExpiresAt) {
		return true, nil
	}
	// Block expired, clear it.
	if err := s.db.WithContext(ctx).Delete(&block).Error; err != nil {
		return false, fmt.Errorf("clear email block: %w", err)
	}
	return false, nil
}

func (s *OTPService) block(ctx context.Context, email string) error {
	block := model.EmailBlock{
		Email:     email,
		ExpiresAt: time.Now().Add(blockLifetime),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&block).Error
	if err != nil {
		return fmt.Errorf("block email: %w", err)
	}
	return nil
}

func GenerateOTP(length int) string {
	var otp strings.Builder
	for i := 0; i < length; i++ {
		otp.WriteByte(byte('0' + rand.Intn(10)))
	}
	return otp.String()
}

func GenerateREF(length int) string {
	const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	var ref strings.Builder
	for i := 0; i < length; i++ {
		ref.WriteByte(characters[rand.Intn(len(characters))])
	}
	return ref.String()
}

func GenerateEmailContent(otp, ref string) string {
	return `<div style="font-family:Arial;max-width:480px;margin:0 auto">
  <h1 style="text-align:center">TodoApp</h1>
  <p>Use the code below on the password reset page.</p>
  <p style="font-size:20px;text-align:center">OTP : <strong>` + otp + `</strong></p>
  <p style="font-size:20px;text-align:center">Ref : <strong>` + ref + `</strong></p>
  <p>The code expires in 15 minutes.</p>
</div>`
}

func LoadEmailConfig() (*model.EmailConfig, error) {
	config := &model.EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}

	if config.Host == "" || config.Port == "" || config.Username == "" || config.Password == "" {
		return nil, fmt.Errorf("missing required SMTP environment variables")
	}
	return config, nil
}

func SendingEmail(to, subject, body string) error {
	config, err := LoadEmailConfig()
	if err != nil {
		return fmt.Errorf("config loading error: %w", err)
	}

	addr := config.Host + ":" + config.Port
	auth := smtp.PlainAuth("", config.Username, config.Password, config.Host)

	from := config.Username
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	message := "From: " + from + "\n" +
		"To: " + to + "\n" +
		"Subject: " + subject + "\n" +
		mime + "\n" +
		body

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("SMTP send error: %w", err)
	}
	return nil
}
