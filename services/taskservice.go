package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"todoapp/model"
)

// TaskService handles task CRUD, the assignment workflow and search.
type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// Create adds a task to a list. The caller becomes both creator and
// assignee; CreatedAt defaults to now.
func (s *TaskService) Create(ctx context.Context, task *model.Task, userID string) error {
	if task == nil {
		return invalidf("task payload is required")
	}
	if task.Title == "" {
		return invalidf("task title is required")
	}

	var list model.TodoList
	err := s.db.WithContext(ctx).First(&list, task.TodoListID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("list %d", task.TodoListID)
	}
	if err != nil {
		return fmt.Errorf("load list: %w", err)
	}

	scope, err := ResolveListScope(ctx, s.db, task.TodoListID, userID)
	if err != nil {
		return err
	}
	if !scope.CanEdit() {
		return deniedf("user %s may not create tasks in list %d", userID, task.TodoListID)
	}

	if task.Status == "" {
		task.Status = model.StatusNotStarted
	}
	task.CreatorID = userID
	task.AssigneeID = userID
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetByID returns the task with tags and comments. Strict read.
func (s *TaskService) GetByID(ctx context.Context, id uint, userID string) (*model.Task, error) {
	scope, _, err := ResolveTaskScope(ctx, s.db, id, userID)
	if err != nil {
		return nil, err
	}
	if !scope.IsMember() {
		return nil, deniedf("user %s has no access to task %d", userID, id)
	}

	var task model.Task
	err = s.db.WithContext(ctx).Preload("Tags").Preload("Comments").First(&task, id).Error
	if err != nil {
		return nil, fmt.Errorf("load task: %w", err)
	}
	return &task, nil
}

// GetAllForUser returns every task in every list the caller belongs to.
func (s *TaskService) GetAllForUser(ctx context.Context, userID string) ([]model.Task, error) {
	ids, err := memberListIDs(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	tasks := []model.Task{}
	if len(ids) == 0 {
		return tasks, nil
	}
	err = s.db.WithContext(ctx).Preload("Tags").Preload("Comments").
		Where("todo_list_id IN ?", ids).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

// Update maps mutable fields onto the stored task. Creator, assignee,
// created-at and owning list never change through this path.
func (s *TaskService) Update(ctx context.Context, task *model.Task, userID string) error {
	if task == nil {
		return invalidf("task payload is required")
	}
	if task.Title == "" {
		return invalidf("task title is required")
	}
	status, ok := model.ParseTaskStatus(string(task.Status))
	if !ok {
		return invalidf("unknown status %q", task.Status)
	}

	scope, existing, err := ResolveTaskScope(ctx, s.db, task.ID, userID)
	if err != nil {
		return err
	}
	if !scope.CanEdit() {
		return deniedf("user %s may not edit task %d", userID, task.ID)
	}

	existing.Title = task.Title
	existing.Description = task.Description
	existing.DueDate = task.DueDate
	existing.Status = status
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Delete removes a task. Stricter than edit: list owner only.
func (s *TaskService) Delete(ctx context.Context, id uint, userID string) error {
	scope, task, err := ResolveTaskScope(ctx, s.db, id, userID)
	if err != nil {
		return err
	}
	if !scope.IsOwner() {
		return deniedf("only the list owner may delete task %d", id)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Exec("DELETE FROM task_tags WHERE task_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete tag links: %w", err)
		}
		if err := tx.Delete(&task).Error; err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
}

// GetByListID returns a list's tasks. Soft read: non-members get an
// empty collection, not an error, so list navigation stays quiet.
func (s *TaskService) GetByListID(ctx context.Context, todoListID uint, userID string) ([]model.Task, error) {
	scope, err := ResolveListScope(ctx, s.db, todoListID, userID)
	if err != nil {
		return nil, err
	}
	tasks := []model.Task{}
	if !scope.IsMember() {
		return tasks, nil
	}

	err = s.db.WithContext(ctx).Preload("Tags").Preload("Comments").
		Where("todo_list_id = ?", todoListID).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

// GetAssigned returns tasks assigned to the caller. Without an explicit
// status filter, completed and cancelled tasks are hidden: the default
// view is active work.
func (s *TaskService) GetAssigned(ctx context.Context, userID string, status *model.TaskStatus, sortBy string, ascending bool) ([]model.Task, error) {
	query := s.db.WithContext(ctx).Where("assignee_id = ?", userID)

	if status != nil {
		parsed, ok := model.ParseTaskStatus(string(*status))
		if !ok {
			return nil, invalidf("unknown status %q", *status)
		}
		query = query.Where("status = ?", parsed)
	} else {
		query = query.Where("status NOT IN ?", []model.TaskStatus{model.StatusCompleted, model.StatusCancelled})
	}

	column := "created_at"
	switch sortBy {
	case "name":
		column = "title"
	case "duedate":
		column = "due_date"
	}
	direction := "ASC"
	if !ascending {
		direction = "DESC"
	}

	tasks := []model.Task{}
	if err := query.Order(column + " " + direction).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("load assigned tasks: %w", err)
	}
	return tasks, nil
}

// ChangeStatus is the assignee's exclusive right; even the list owner is
// rejected unless they are also the assignee.
func (s *TaskService) ChangeStatus(ctx context.Context, id uint, newStatus model.TaskStatus, userID string) error {
	status, ok := model.ParseTaskStatus(string(newStatus))
	if !ok {
		return invalidf("unknown status %q", newStatus)
	}

	var task model.Task
	err := s.db.WithContext(ctx).First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("task %d", id)
	}
	if err != nil {
		return fmt.Errorf("load task: %w", err)
	}

	if task.AssigneeID != userID {
		return deniedf("only the assignee may change the status of task %d", id)
	}

	task.Status = status
	if err := s.db.WithContext(ctx).Save(&task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Search filters the caller's visible tasks. Filters are AND-combined;
// date filters match by calendar day, time of day ignored.
func (s *TaskService) Search(ctx context.Context, userID string, title *string, dueDate, createdAt *time.Time) ([]model.Task, error) {
	ids, err := memberListIDs(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	tasks := []model.Task{}
	if len(ids) == 0 {
		return tasks, nil
	}

	query := s.db.WithContext(ctx).Preload("Tags").Preload("Comments").
		Where("todo_list_id IN ?", ids)

	if title != nil && *title != "" {
		query = query.Where("title LIKE ?", "%"+*title+"%")
	}
	if dueDate != nil {
		start, end := dayBounds(*dueDate)
		query = query.Where("due_date >= ? AND due_date < ?", start, end)
	}
	if createdAt != nil {
		start, end := dayBounds(*createdAt)
		query = query.Where("created_at >= ? AND created_at < ?", start, end)
	}

	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	return tasks, nil
}

// Assign hands a task to another member. List owner only; the new
// assignee must already belong to the list.
func (s *TaskService) Assign(ctx context.Context, taskID uint, newAssigneeID, userID string) error {
	scope, task, err := ResolveTaskScope(ctx, s.db, taskID, userID)
	if err != nil {
		return err
	}
	if !scope.IsOwner() {
		return deniedf("only the list owner may assign task %d", taskID)
	}

	assigneeScope, err := ResolveListScope(ctx, s.db, task.TodoListID, newAssigneeID)
	if err != nil {
		return err
	}
	if !assigneeScope.IsMember() {
		return deniedf("user %s is not a member of list %d", newAssigneeID, task.TodoListID)
	}

	task.AssigneeID = newAssigneeID
	if err := s.db.WithContext(ctx).Save(&task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}
