package dto

import "time"

type CreateTaskRequest struct {
	TodoListID  uint       `json:"todo_list_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
}

type UpdateTaskRequest struct {
	ID          uint       `json:"id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status" binding:"required"`
}

type AssignTaskRequest struct {
	AssigneeID string `json:"assignee_id" binding:"required"`
}

type TaskResponse struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	TodoListID  uint              `json:"todo_list_id"`
	CreatorID   string            `json:"creator_id"`
	AssigneeID  string            `json:"assignee_id"`
	CreatedAt   time.Time         `json:"created_at"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	Status      string            `json:"status"`
	IsCompleted bool              `json:"is_completed"` // derived from status
	Tags        []TagResponse     `json:"tags,omitempty"`
	Comments    []CommentResponse `json:"comments,omitempty"`
}
