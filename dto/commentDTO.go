package dto

import "time"

type CreateCommentRequest struct {
	TaskID uint   `json:"task_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

type UpdateCommentRequest struct {
	ID   uint   `json:"id" binding:"required"`
	Text string `json:"text" binding:"required"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	TaskID    uint      `json:"task_id"`
	UserID    string    `json:"user_id"`
}
