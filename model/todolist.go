package model

// Role grants a user a level of access on one todo list.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// ParseRole validates a role value coming off the wire.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner, RoleEditor, RoleViewer:
		return Role(s), true
	}
	return "", false
}

type TodoList struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	Tasks   []Task           `gorm:"constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	Members []TodoListMember `gorm:"constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

func (TodoList) TableName() string {
	return "todo_lists"
}

// TodoListMember is the membership row granting a role on a list.
// One row per (list, user) pair.
type TodoListMember struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	TodoListID uint   `gorm:"not null;uniqueIndex:idx_list_user" json:"todo_list_id"`
	UserID     string `gorm:"not null;uniqueIndex:idx_list_user" json:"user_id"`
	Role       Role   `gorm:"not null;default:viewer" json:"role"`

	User User `gorm:"foreignKey:UserID;references:UserID" json:"-"`
}

func (TodoListMember) TableName() string {
	return "todo_list_members"
}
