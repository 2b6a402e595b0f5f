package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"todoapp/model"
)

// CommentService manages comments under tasks.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Add stamps the caller and creation time onto the comment. Requires
// edit access on the task's list.
func (s *CommentService) Add(ctx context.Context, comment *model.Comment, userID string) error {
	if comment == nil {
		return invalidf("comment payload is required")
	}
	if comment.Text == "" {
		return invalidf("comment text is required")
	}

	scope, _, err := ResolveTaskScope(ctx, s.db, comment.TaskID, userID)
	if err != nil {
		return err
	}
	if !scope.CanEdit() {
		return deniedf("user %s may not comment on task %d", userID, comment.TaskID)
	}

	comment.UserID = userID
	comment.CreatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// GetByTaskID returns a task's comments, newest first. Soft read:
// callers without access get an empty collection.
func (s *CommentService) GetByTaskID(ctx context.Context, taskID uint, userID string) ([]model.Comment, error) {
	scope, _, err := ResolveTaskScope(ctx, s.db, taskID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []model.Comment{}, nil
		}
		return nil, err
	}

	comments := []model.Comment{}
	if !scope.IsMember() {
		return comments, nil
	}

	err = s.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	return comments, nil
}

// Update rewrites a comment's text. Stricter than add: only the list
// owner may edit comments, including other users' ones.
func (s *CommentService) Update(ctx context.Context, comment *model.Comment, userID string) error {
	if comment == nil {
		return invalidf("comment payload is required")
	}
	if comment.Text == "" {
		return invalidf("comment text is required")
	}

	existing, err := s.loadWithScope(ctx, comment.ID, userID)
	if err != nil {
		return err
	}

	existing.Text = comment.Text
	if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
		return fmt.Errorf("save comment: %w", err)
	}
	return nil
}

// Delete removes a comment. List owner only.
func (s *CommentService) Delete(ctx context.Context, id uint, userID string) error {
	existing, err := s.loadWithScope(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(existing).Error; err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// loadWithScope fetches a comment and checks the caller owns its list.
func (s *CommentService) loadWithScope(ctx context.Context, id uint, userID string) (*model.Comment, error) {
	var existing model.Comment
	err := s.db.WithContext(ctx).First(&existing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("comment %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load comment: %w", err)
	}

	scope, _, err := ResolveTaskScope(ctx, s.db, existing.TaskID, userID)
	if err != nil {
		return nil, err
	}
	if !scope.IsOwner() {
		return nil, deniedf("only the list owner may modify comment %d", id)
	}
	return &existing, nil
}
