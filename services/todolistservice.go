package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todoapp/model"
)

// TodoListService handles list CRUD and membership administration.
type TodoListService struct {
	db *gorm.DB
}

func NewTodoListService(db *gorm.DB) *TodoListService {
	return &TodoListService{db: db}
}

// Create persists the list and its owner membership in one transaction,
// so a crash can never leave an ownerless list behind.
func (s *TodoListService) Create(ctx context.Context, list *model.TodoList, creatorID string) error {
	if list == nil {
		return invalidf("list payload is required")
	}
	if list.Title == "" {
		return invalidf("list title is required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(list).Error; err != nil {
			return fmt.Errorf("create list: %w", err)
		}
		membership := model.TodoListMember{
			TodoListID: list.ID,
			UserID:     creatorID,
			Role:       model.RoleOwner,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return fmt.Errorf("create owner membership: %w", err)
		}
		return nil
	})
}

// GetAll returns every list the caller belongs to, tasks included.
func (s *TodoListService) GetAll(ctx context.Context, userID string) ([]model.TodoList, error) {
	ids, err := memberListIDs(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	lists := []model.TodoList{}
	if len(ids) == 0 {
		return lists, nil
	}
	if err := s.db.WithContext(ctx).Preload("Tasks").Where("id IN ?", ids).Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("load lists: %w", err)
	}
	return lists, nil
}

// GetByID returns the list with members (users resolved) and tasks.
// Strict read: missing list is not-found, non-member is access-denied.
func (s *TodoListService) GetByID(ctx context.Context, id uint, userID string) (*model.TodoList, error) {
	var list model.TodoList
	err := s.db.WithContext(ctx).
		Preload("Members").
		Preload("Members.User").
		Preload("Tasks").
		First(&list, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("list %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load list: %w", err)
	}

	scope, err := ResolveListScope(ctx, s.db, id, userID)
	if err != nil {
		return nil, err
	}
	if !scope.IsMember() {
		return nil, deniedf("user %s is not a member of list %d", userID, id)
	}
	return &list, nil
}

// Update overwrites title and description. Owner only.
func (s *TodoListService) Update(ctx context.Context, list *model.TodoList, userID string) error {
	if list == nil {
		return invalidf("list payload is required")
	}

	var existing model.TodoList
	err := s.db.WithContext(ctx).First(&existing, list.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("list %d", list.ID)
	}
	if err != nil {
		return fmt.Errorf("load list: %w", err)
	}

	scope, err := ResolveListScope(ctx, s.db, list.ID, userID)
	if err != nil {
		return err
	}
	if !scope.IsOwner() {
		return deniedf("only the owner may edit list %d", list.ID)
	}

	existing.Title = list.Title
	existing.Description = list.Description
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return fmt.Errorf("save list: %w", err)
	}
	return nil
}

// Delete removes the list. Owner only. Tasks, memberships, comments and
// tag links go with it via FK cascade.
func (s *TodoListService) Delete(ctx context.Context, id uint, userID string) error {
	var existing model.TodoList
	err := s.db.WithContext(ctx).First(&existing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("list %d", id)
	}
	if err != nil {
		return fmt.Errorf("load list: %w", err)
	}

	scope, err := ResolveListScope(ctx, s.db, id, userID)
	if err != nil {
		return err
	}
	if !scope.IsOwner() {
		return deniedf("only the owner may delete list %d", id)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM comments WHERE task_id IN (SELECT id FROM tasks WHERE todo_list_id = ?)", id).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Exec("DELETE FROM task_tags WHERE task_id IN (SELECT id FROM tasks WHERE todo_list_id = ?)", id).Error; err != nil {
			return fmt.Errorf("delete tag links: %w", err)
		}
		if err := tx.Where("todo_list_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete tasks: %w", err)
		}
		if err := tx.Where("todo_list_id = ?", id).Delete(&model.TodoListMember{}).Error; err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := tx.Delete(&model.TodoList{}, id).Error; err != nil {
			return fmt.Errorf("delete list: %w", err)
		}
		return nil
	})
}

// AddMember adds a user to the list as Viewer. Owner only.
func (s *TodoListService) AddMember(ctx context.Context, todoListID uint, newUserID, ownerID string) error {
	var list model.TodoList
	err := s.db.WithContext(ctx).First(&list, todoListID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("list %d", todoListID)
	}
	if err != nil {
		return fmt.Errorf("load list: %w", err)
	}

	scope, err := ResolveListScope(ctx, s.db, todoListID, ownerID)
	if err != nil {
		return err
	}
	if !scope.IsOwner() {
		return deniedf("only the owner may add members")
	}

	var user model.User
	err = s.db.WithContext(ctx).First(&user, "user_id = ?", newUserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("user %s", newUserID)
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.TodoListMember{}).
		Where("todo_list_id = ? AND user_id = ?", todoListID, newUserID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if count > 0 {
		return invalidf("user %s is already a member", newUserID)
	}

	member := model.TodoListMember{
		TodoListID: todoListID,
		UserID:     newUserID,
		Role:       model.RoleViewer,
	}
	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		return fmt.Errorf("create membership: %w", err)
	}
	return nil
}

// RemoveMember deletes a membership and hands the member's assigned
// tasks back to the owner. Owners cannot remove themselves; they delete
// the whole list instead.
func (s *TodoListService) RemoveMember(ctx context.Context, todoListID uint, memberID, ownerID string) error {
	if memberID == ownerID {
		return invalidf("cannot remove yourself from your own list; delete the list instead")
	}

	scope, err := ResolveListScope(ctx, s.db, todoListID, ownerID)
	if err != nil {
		return err
	}
	if !scope.IsOwner() {
		return deniedf("only the owner may remove members")
	}

	var member model.TodoListMember
	err = s.db.WithContext(ctx).
		Where("todo_list_id = ? AND user_id = ?", todoListID, memberID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("user %s is not a member of list %d", memberID, todoListID)
	}
	if err != nil {
		return fmt.Errorf("load membership: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Task{}).
			Where("todo_list_id = ? AND assignee_id = ?", todoListID, memberID).
			Update("assignee_id", ownerID).Error
		if err != nil {
			return fmt.Errorf("reassign tasks: %w", err)
		}
		if err := tx.Delete(&member).Error; err != nil {
			return fmt.Errorf("delete membership: %w", err)
		}
		return nil
	})
}

// UpdateMemberRole overwrites a member's role. Owner only. Demoting the
// last remaining owner is refused so a list can never go ownerless.
func (s *TodoListService) UpdateMemberRole(ctx context.Context, todoListID uint, memberID string, newRole model.Role, ownerID string) error {
	if _, ok := model.ParseRole(string(newRole)); !ok {
		return invalidf("unknown role %q", newRole)
	}

	scope, err := ResolveListScope(ctx, s.db, todoListID, ownerID)
	if err != nil {
		return err
	}
	if !scope.IsOwner() {
		return deniedf("only the owner may change member roles")
	}

	var member model.TodoListMember
	err = s.db.WithContext(ctx).
		Where("todo_list_id = ? AND user_id = ?", todoListID, memberID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("user %s is not a member of list %d", memberID, todoListID)
	}
	if err != nil {
		return fmt.Errorf("load membership: %w", err)
	}

	if member.Role == model.RoleOwner && newRole != model.RoleOwner {
		var owners int64
		err := s.db.WithContext(ctx).Model(&model.TodoListMember{}).
			Where("todo_list_id = ? AND role = ?", todoListID, model.RoleOwner).
			Count(&owners).Error
		if err != nil {
			return fmt.Errorf("count owners: %w", err)
		}
		if owners <= 1 {
			return invalidf("cannot demote the last owner of list %d", todoListID)
		}
	}

	member.Role = newRole
	if err := s.db.WithContext(ctx).Save(&member).Error; err != nil {
		return fmt.Errorf("save membership: %w", err)
	}
	return nil
}
