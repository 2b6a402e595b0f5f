package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todoapp/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.TodoList{},
		&model.TodoListMember{},
		&model.Task{},
		&model.Tag{},
		&model.Comment{},
		&model.RefreshToken{},
		&model.OTPRecord{},
		&model.EmailBlock{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) string {
	t.Helper()

	user := model.User{
		UserID:   uuid.New().String(),
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return user.UserID
}

func seedList(t *testing.T, db *gorm.DB, title, ownerID string) uint {
	t.Helper()

	list := model.TodoList{Title: title}
	if err := NewTodoListService(db).Create(context.Background(), &list, ownerID); err != nil {
		t.Fatalf("seed list %s: %v", title, err)
	}
	return list.ID
}

func addMember(t *testing.T, db *gorm.DB, listID uint, userID string, role model.Role, ownerID string) {
	t.Helper()

	svc := NewTodoListService(db)
	if err := svc.AddMember(context.Background(), listID, userID, ownerID); err != nil {
		t.Fatalf("add member %s: %v", userID, err)
	}
	if role != model.RoleViewer {
		if err := svc.UpdateMemberRole(context.Background(), listID, userID, role, ownerID); err != nil {
			t.Fatalf("set role %s for %s: %v", role, userID, err)
		}
	}
}

func seedTask(t *testing.T, db *gorm.DB, listID uint, title, creatorID string) uint {
	t.Helper()

	task := model.Task{TodoListID: listID, Title: title}
	if err := NewTaskService(db).Create(context.Background(), &task, creatorID); err != nil {
		t.Fatalf("seed task %s: %v", title, err)
	}
	return task.ID
}
