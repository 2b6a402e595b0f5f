package model

import (
	"strings"
	"time"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not_started"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// ParseTaskStatus accepts wire values case-insensitively.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(strings.ToLower(s)) {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusCancelled:
		return TaskStatus(strings.ToLower(s)), true
	}
	return "", false
}

type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	TodoListID  uint       `gorm:"not null;index" json:"todo_list_id"`
	CreatorID   string     `gorm:"not null" json:"creator_id"`
	AssigneeID  string     `gorm:"not null;index" json:"assignee_id"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      TaskStatus `gorm:"not null;default:not_started" json:"status"`

	Tags     []Tag     `gorm:"many2many:task_tags" json:"tags,omitempty"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}
