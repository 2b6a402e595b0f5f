package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"todoapp/model"
)

func TestCreateTaskSelfAssigned(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	owner := seedUser(t, db, "alice")
	listID := seedList(t, db, "Groceries", owner)

	task := model.Task{TodoListID: listID, Title: "Buy milk"}
	if err := svc.Create(context.Background(), &task, owner); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if task.CreatorID != owner || task.AssigneeID != owner {
		t.Fatalf("creator=%s assignee=%s, want both %s", task.CreatorID, task.AssigneeID, owner)
	}
	if task.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not stamped")
	}
	if task.Status != model.StatusNotStarted {
		t.Fatalf("status = %q, want not_started", task.Status)
	}
}

func TestCreateTaskUnknownList(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	user := seedUser(t, db, "alice")

	task := model.Task{TodoListID: 9999, Title: "Orphan"}
	if err := svc.Create(context.Background(), &task, user); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestRoleHierarchy(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice")
	editor := seedUser(t, db, "bob")
	viewer := seedUser(t, db, "carol")
	listID := seedList(t, db, "Groceries", owner)
	addMember(t, db, listID, editor, model.RoleEditor, owner)
	addMember(t, db, listID, viewer, model.RoleViewer, owner)

	// Viewer reads but cannot create.
	task := model.Task{TodoListID: listID, Title: "Buy milk"}
	if err := svc.Create(ctx, &task, viewer); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("viewer create error = %v, want ErrAccessDenied", err)
	}

	// Editor creates and updates.
	if err := svc.Create(ctx, &task, editor); err != nil {
		t.Fatalf("editor create: %v", err)
	}
	if _, err := svc.GetByID(ctx, task.ID, viewer); err != nil {
		t.Fatalf("viewer read: %v", err)
	}

	update := model.Task{ID: task.ID, Title: "Buy oat milk", Status: model.StatusInProgress}
	if err := svc.Update(ctx, &update, viewer); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("viewer update error = %v, want ErrAccessDenied", err)
	}
	if err := svc.Update(ctx, &update, editor); err != nil {
		t.Fatalf("editor update: %v", err)
	}

	// Deleting is the owner's privilege, not the editor's.
	if err := svc.Delete(ctx, task.ID, editor); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("editor delete error = %v, want ErrAccessDenied", err)
	}
	if err := svc.Delete(ctx, task.ID, owner); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestUpdatePreservesImmutableFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice")
	listID := seedList(t, db, "Groceries", owner)
	taskID := seedTask(t, db, listID, "Buy milk", owner)

	var before model.Task
	if err := db.First(&before, taskID).Error; err != nil {
		t.Fatalf("load task: %v", err)
	}

	update := model.Task{ID: taskID, Title: "Buy bread", Status: model.StatusInProgress}
	if err := svc.Update(ctx, &update, owner); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var after model.Task
	if err := db.First(&after, taskID).Error; err != nil {
		t.Fatalf("reload task: %v", err)
	}
	if after.Title != "Buy bread" || after.Status != model.StatusInProgress {
		t.Fatalf("mutable fields not applied: %+v", after)
	}
	if after.CreatorID != before.CreatorID || after.AssigneeID != before.AssigneeID {
		t.Fatal("creator/assignee changed through update")
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatal("created-at changed through update")
	}

	bad := model.Task{ID: taskID, Title: "x", Status: "paused"}
	if err := svc.Update(ctx, &bad, owner); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("unknown status error = %v, want ErrInvalidArgument", err)
	}
}

// Status values are case-insensitive on the way in but stored
// normalized, so filters and the completed-work exclusion keep working.
func TestUpdateNormalizesStatusCase(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice")
	listID := seedList(t, db, "Groceries", owner)
	taskID := seedTask(t, db, listID, "Buy milk", owner)

	update := model.Task{ID: taskID, Title: "Buy milk", Status: "Completed"}
	if err := svc.Update(ctx, &update, owner); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var stored model.Task
	if err := db.First(&stored, taskID).Error; err != nil {
		t.Fatalf("reload task: %v", err)
	}
	if stored.Status != model.StatusCompleted {
		t.Fatalf("stored status = %q, want %q", stored.Status, model.StatusCompleted)
	}

	// Completed work stays out of the default assigned view no matter
	// how the client cased the value.
	tasks, err := svc.GetAssigned(ctx, owner, nil, "name", true)
	if err != nil {
		t.Fatalf("GetAssigned: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("default view tasks = %d, want 0", len(tasks))
	}

	filter := model.TaskStatus("COMPLETED")
	tasks, err = svc.GetAssigned(ctx, owner, &filter, "name", true)
	if err != nil {
		t.Fatalf("GetAssigned filtered: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("filtered tasks = %d, want 1", len(tasks))
	}
}

func TestGetByListIDSoftFail(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice")
	stranger := seedUser(t, db, "bob")
	listID := seedList(t, db, "Groceries", owner)
	seedTask(t, db, listID, "Buy milk", owner)

	tasks, err := svc.GetByListID(ctx, listID, stranger)
	if err != nil {
		t.Fatalf("GetByListID: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("stranger sees %d tasks, want 0", len(tasks))
	}

	tasks, err = svc.GetByListID(ctx, listID, owner)
	if err != nil {
		t.Fatalf("GetByListID: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("owner sees %d tasks, want 1", len(tasks))
	}
}

func TestGetAssignedDefaultsToActiveWork(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice")
	listID := seedList(t, db, "Groceries", owner)

	mkTask := func(title string, status model.TaskStatus) {
		task := model.Task{TodoListID: listID, Title: title}
		if err := svc.Create(ctx, &task, owner); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		if status != model.StatusNotStarted {
			if err := svc.ChangeStatus(ctx, task.ID, status, owner); err != nil {
				t.Fatalf("set status %s: %v", status, err)
			}
		}
	}
	mkTask("a", model.StatusNotStarted)
	mkTask("b", model.StatusInProgress)
	mkTask("c", model.StatusCompleted)
	mkTask("d", model.StatusCancelled)

	tasks, err := svc.GetAssigned(ctx, owner, nil, "name", true)
	if err != nil {
		t.Fatalf("GetAssigned: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("default view tasks = %d, want 2", len(tasks))
	}
	if tasks[0].Title != "a" || tasks[1].Title != "b" {
		t.Fatalf("sort order = %s,%s, want a,b", tasks[0].Title, tasks[1].Title)
	}

	done := model.StatusCompleted
	tasks, err = svc.GetAssigned(ctx, owner, &done, "name", false)
	if err != nil {
		t.Fatalf("GetAssigned completed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "c" {
		t.Fatalf("completed filter returned %+v", tasks)
	}

	bad := model.TaskStatus("paused")
	if _, err := svc.GetAssigned(ctx, owner, &bad, "name", true); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("unknown status filter error = %v, want ErrInvalidArgument", err)
	}
}

func TestChangeStatusAssigneeOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice")
	editor := seedUser(t, db, "bob")
	listID := seedList(t, db, "Groceries", owner)
	addMember(t, db, listID, editor, model.RoleEditor, owner)
	taskID := seedTask(t, db, listID, "Buy milk", editor)

	// The owner is not the assignee, so even they are rejected.
	err := svc.ChangeStatus(ctx, taskID, model.StatusCompleted, owner)
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("owner change-status error = %v, want ErrAccessDenied", err)
	}

	if err := svc.ChangeStatus(ctx, taskID, model.StatusCompleted, editor); err != nil {
		t.Fatalf("assignee change-status: %v", err)
	}

	var task model.Task
	if err := db.First(&task, taskID).Error; err != nil {
		t.Fatalf("reload task: %v", err)
	}
	if task.Status != model.StatusCompleted {
		t.Fatalf("status = %q, want completed", task.Status)
	}

	if err := svc.ChangeStatus(ctx, taskID, "paused", editor); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("unknown status error = %v, want ErrInvalidArgument", err)
	}
}

func TestSearchANDSemantics(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice")
	listID := seedList(t, db, "Groceries", owner)

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	mk := func(title string, due *time.Time) {
		task := model.Task{TodoListID: listID, Title: title, DueDate: due}
		if err := svc.Create(ctx, &task, owner); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}
	morning := day.Add(9 * time.Hour)
	otherDay := day.AddDate(0, 0, 1)
	mk("foo one", &morning)  // matches both filters
	mk("foo two", &otherDay) // title only
	mk("bar", &morning)      // date only

	title := "foo"
	tasks, err := svc.Search(ctx, owner, &title, &day, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "foo one" {
		t.Fatalf("search returned %d tasks, want only 'foo one'", len(tasks))
	}

	// Filters are optional; title alone matches two.
	tasks, err = svc.Search(ctx, owner, &title, nil, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("title-only search = %d tasks, want 2", len(tasks))
	}

	// Membership scoping: another user sees nothing.
	stranger := seedUser(t, db, "bob")
	tasks, err = svc.Search(ctx, stranger, &title, nil, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("stranger search = %d tasks, want 0", len(tasks))
	}
}

func TestAssignRequiresOwnerAndMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice")
	editor := seedUser(t, db, "bob")
	outsider := seedUser(t, db, "carol")
	listID := seedList(t, db, "Groceries", owner)
	addMember(t, db, listID, editor, model.RoleEditor, owner)
	taskID := seedTask(t, db, listID, "Buy milk", owner)

	if err := svc.Assign(ctx, taskID, editor, editor); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("editor assign error = %v, want ErrAccessDenied", err)
	}
	if err := svc.Assign(ctx, taskID, outsider, owner); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("assign to non-member error = %v, want ErrAccessDenied", err)
	}

	if err := svc.Assign(ctx, taskID, editor, owner); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	var task model.Task
	if err := db.First(&task, taskID).Error; err != nil {
		t.Fatalf("reload task: %v", err)
	}
	if task.AssigneeID != editor {
		t.Fatalf("assignee = %s, want %s", task.AssigneeID, editor)
	}
}

// Full collaboration walkthrough: owner invites, promotes, assigns; the
// assignee completes; the owner cleans up.
func TestCollaborationScenario(t *testing.T) {
	db := newTestDB(t)
	lists := NewTodoListService(db)
	tasks := NewTaskService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	listID := seedList(t, db, "Groceries", a)

	if err := lists.AddMember(ctx, listID, b, a); err != nil {
		t.Fatalf("add member: %v", err)
	}

	update := &model.TodoList{ID: listID, Title: "Weekly groceries"}
	if err := lists.Update(ctx, update, b); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("viewer list update error = %v, want ErrAccessDenied", err)
	}

	if err := lists.UpdateMemberRole(ctx, listID, b, model.RoleEditor, a); err != nil {
		t.Fatalf("promote to editor: %v", err)
	}

	task := model.Task{TodoListID: listID, Title: "Buy milk"}
	if err := tasks.Create(ctx, &task, b); err != nil {
		t.Fatalf("editor create task: %v", err)
	}
	if task.CreatorID != b || task.AssigneeID != b {
		t.Fatalf("creator=%s assignee=%s, want both %s", task.CreatorID, task.AssigneeID, b)
	}

	if err := tasks.Assign(ctx, task.ID, b, a); err != nil {
		t.Fatalf("owner assign: %v", err)
	}
	if err := tasks.ChangeStatus(ctx, task.ID, model.StatusCompleted, b); err != nil {
		t.Fatalf("assignee complete: %v", err)
	}
	if err := tasks.Delete(ctx, task.ID, a); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}
