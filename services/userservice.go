package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"todoapp/model"
)

// UserService provides user lookup for auth flows and member pickers.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("user with email %s", email)
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("user %s", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// Search matches email or name by substring, capped at 10 results for
// the member-picker UI. A blank query returns nothing.
func (s *UserService) Search(ctx context.Context, query string) ([]model.User, error) {
	users := []model.User{}
	if strings.TrimSpace(query) == "" {
		return users, nil
	}

	pattern := "%" + query + "%"
	err := s.db.WithContext(ctx).
		Where("email LIKE ? OR name LIKE ?", pattern, pattern).
		Limit(10).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}
