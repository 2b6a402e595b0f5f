package model

import "time"

type User struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"default:user" json:"role"` // "user" or "admin"
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
