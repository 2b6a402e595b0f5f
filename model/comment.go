package model

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	TaskID    uint      `gorm:"not null;index" json:"task_id"`
	UserID    string    `gorm:"not null" json:"user_id"`
}

func (Comment) TableName() string {
	return "comments"
}
