package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todoapp/model"
)

// AuthScope is the caller's resolved standing on one todo list. It is
// computed once per service call and consulted instead of re-querying
// the membership table for every check.
type AuthScope struct {
	UserID     string
	TodoListID uint
	Role       model.Role
	member     bool
}

// IsMember reports read access: any role on the list.
func (s AuthScope) IsMember() bool {
	return s.member
}

// CanEdit reports content-mutation access: owner or editor.
func (s AuthScope) CanEdit() bool {
	return s.member && (s.Role == model.RoleOwner || s.Role == model.RoleEditor)
}

// IsOwner reports destructive/administrative access.
func (s AuthScope) IsOwner() bool {
	return s.member && s.Role == model.RoleOwner
}

// ResolveListScope loads the caller's membership row for a list. A
// missing row is not an error; the scope simply grants nothing.
func ResolveListScope(ctx context.Context, db *gorm.DB, todoListID uint, userID string) (AuthScope, error) {
	scope := AuthScope{UserID: userID, TodoListID: todoListID}

	var member model.TodoListMember
	err := db.WithContext(ctx).
		Where("todo_list_id = ? AND user_id = ?", todoListID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return scope, nil
	}
	if err != nil {
		return scope, fmt.Errorf("resolve membership: %w", err)
	}

	scope.Role = member.Role
	scope.member = true
	return scope, nil
}

// ResolveTaskScope resolves the owning list of a task, then the caller's
// scope on it. Returns ErrNotFound if the task does not exist.
func ResolveTaskScope(ctx context.Context, db *gorm.DB, taskID uint, userID string) (AuthScope, model.Task, error) {
	var task model.Task
	err := db.WithContext(ctx).First(&task, taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthScope{}, task, notFoundf("task %d", taskID)
	}
	if err != nil {
		return AuthScope{}, task, fmt.Errorf("load task: %w", err)
	}

	scope, err := ResolveListScope(ctx, db, task.TodoListID, userID)
	return scope, task, err
}

// memberListIDs returns ids of every list the user belongs to.
func memberListIDs(ctx context.Context, db *gorm.DB, userID string) ([]uint, error) {
	var ids []uint
	err := db.WithContext(ctx).Model(&model.TodoListMember{}).
		Where("user_id = ?", userID).
		Pluck("todo_list_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return ids, nil
}
