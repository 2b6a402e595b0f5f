package model

// Tag is global: reusable across lists, matched by name case-insensitively.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`

	Tasks []Task `gorm:"many2many:task_tags" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}
