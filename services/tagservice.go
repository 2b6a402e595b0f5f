package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todoapp/model"
)

// TagService manages the global tag pool and task↔tag links.
type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// AddTagToTask links a tag to a task, creating the tag row only when no
// existing tag matches the name case-insensitively. Linking an already
// linked tag is a no-op.
func (s *TagService) AddTagToTask(ctx context.Context, taskID uint, name, userID string) (*model.Tag, error) {
	if name == "" {
		return nil, invalidf("tag name is required")
	}

	scope, task, err := ResolveTaskScope(ctx, s.db, taskID, userID)
	if err != nil {
		return nil, err
	}
	if !scope.CanEdit() {
		return nil, deniedf("user %s may not edit tags on task %d", userID, taskID)
	}

	var tag model.Tag
	err = s.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tag = model.Tag{Name: name}
		if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
			return nil, fmt.Errorf("create tag: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("look up tag: %w", err)
	}

	var linked int64
	err = s.db.WithContext(ctx).Table("task_tags").
		Where("task_id = ? AND tag_id = ?", task.ID, tag.ID).
		Count(&linked).Error
	if err != nil {
		return nil, fmt.Errorf("check tag link: %w", err)
	}
	if linked > 0 {
		return &tag, nil
	}

	if err := s.db.WithContext(ctx).Exec("INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?)", task.ID, tag.ID).Error; err != nil {
		return nil, fmt.Errorf("link tag: %w", err)
	}
	return &tag, nil
}

// GetAllTags returns the distinct tags attached to any task in any list
// the caller belongs to.
func (s *TagService) GetAllTags(ctx context.Context, userID string) ([]model.Tag, error) {
	tags := []model.Tag{}
	err := s.db.WithContext(ctx).
		Distinct("tags.id", "tags.name").
		Joins("JOIN task_tags ON task_tags.tag_id = tags.id").
		Joins("JOIN tasks ON tasks.id = task_tags.task_id").
		Joins("JOIN todo_list_members ON todo_list_members.todo_list_id = tasks.todo_list_id").
		Where("todo_list_members.user_id = ?", userID).
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	return tags, nil
}

// GetTasksByTag returns the caller's visible tasks carrying the tag.
// A tag id that does not exist at all is not-found.
func (s *TagService) GetTasksByTag(ctx context.Context, tagID uint, userID string) ([]model.Task, error) {
	var tag model.Tag
	err := s.db.WithContext(ctx).First(&tag, tagID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("tag %d", tagID)
	}
	if err != nil {
		return nil, fmt.Errorf("load tag: %w", err)
	}

	tasks := []model.Task{}
	err = s.db.WithContext(ctx).Preload("Tags").
		Joins("JOIN task_tags ON task_tags.task_id = tasks.id AND task_tags.tag_id = ?", tagID).
		Joins("JOIN todo_list_members ON todo_list_members.todo_list_id = tasks.todo_list_id").
		Where("todo_list_members.user_id = ?", userID).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("load tasks by tag: %w", err)
	}
	return tasks, nil
}

// RemoveTagFromTask unlinks a tag; the tag row itself survives for
// reuse elsewhere. Unlinking a tag that is not on the task is not-found.
func (s *TagService) RemoveTagFromTask(ctx context.Context, taskID, tagID uint, userID string) error {
	scope, task, err := ResolveTaskScope(ctx, s.db, taskID, userID)
	if err != nil {
		return err
	}
	if !scope.CanEdit() {
		return deniedf("user %s may not edit tags on task %d", userID, taskID)
	}

	var linked int64
	err = s.db.WithContext(ctx).Table("task_tags").
		Where("task_id = ? AND tag_id = ?", task.ID, tagID).
		Count(&linked).Error
	if err != nil {
		return fmt.Errorf("check tag link: %w", err)
	}
	if linked == 0 {
		return notFoundf("tag %d is not attached to task %d", tagID, taskID)
	}

	if err := s.db.WithContext(ctx).Exec("DELETE FROM task_tags WHERE task_id = ? AND tag_id = ?", task.ID, tagID).Error; err != nil {
		return fmt.Errorf("unlink tag: %w", err)
	}
	return nil
}
