package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"todoapp/model"
)

func TestVerifyOTP(t *testing.T) {
	db := newTestDB(t)
	svc := NewOTPService(db)
	ctx := context.Background()

	record := model.OTPRecord{
		Email:     "alice@example.com",
		OTP:       "123456",
		Reference: "REF00001",
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed otp: %v", err)
	}

	if err := svc.Verify(ctx, "alice@example.com", "REF00001", "999999"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("wrong code error = %v, want ErrInvalidArgument", err)
	}
	if err := svc.Verify(ctx, "alice@example.com", "NOPE", "123456"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown ref error = %v, want ErrNotFound", err)
	}
	if err := svc.Verify(ctx, "alice@example.com", "REF00001", "123456"); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	// A code only works once.
	if err := svc.Verify(ctx, "alice@example.com", "REF00001", "123456"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("reused code error = %v, want ErrInvalidArgument", err)
	}

	verified, err := svc.HasVerified(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("HasVerified: %v", err)
	}
	if !verified {
		t.Fatal("verification not recorded")
	}
}

func TestVerifyExpiredOTP(t *testing.T) {
	db := newTestDB(t)
	svc := NewOTPService(db)

	record := model.OTPRecord{
		Email:     "alice@example.com",
		OTP:       "123456",
		Reference: "REF00002",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed otp: %v", err)
	}

	err := svc.Verify(context.Background(), "alice@example.com", "REF00002", "123456")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expired code error = %v, want ErrInvalidArgument", err)
	}
}

func TestOTPGenerators(t *testing.T) {
	otp := GenerateOTP(6)
	if len(otp) != 6 {
		t.Fatalf("otp length = %d, want 6", len(otp))
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			t.Fatalf("otp %q contains non-digit", otp)
		}
	}

	ref := GenerateREF(8)
	if len(ref) != 8 {
		t.Fatalf("ref length = %d, want 8", len(ref))
	}
}
