package dto

import (
	"time"

	"todoapp/model"
)

// Mapping from entities to response payloads. IsCompleted is derived
// here; it is never stored next to the status column.

func TaskToResponse(t model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		TodoListID:  t.TodoListID,
		CreatorID:   t.CreatorID,
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		IsCompleted: t.Status == model.StatusCompleted,
	}
	for _, tag := range t.Tags {
		resp.Tags = append(resp.Tags, TagToResponse(tag))
	}
	for _, c := range t.Comments {
		resp.Comments = append(resp.Comments, CommentToResponse(c))
	}
	return resp
}

func TasksToResponse(tasks []model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskToResponse(t))
	}
	return out
}

func TagToResponse(t model.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

func TagsToResponse(tags []model.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagToResponse(t))
	}
	return out
}

func CommentToResponse(c model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		TaskID:    c.TaskID,
		UserID:    c.UserID,
	}
}

func CommentsToResponse(comments []model.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentToResponse(c))
	}
	return out
}

func MemberToResponse(m model.TodoListMember) MemberResponse {
	return MemberResponse{
		UserID: m.UserID,
		Name:   m.User.Name,
		Email:  m.User.Email,
		Role:   string(m.Role),
	}
}

func TodoListToResponse(l model.TodoList) TodoListResponse {
	resp := TodoListResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
	}
	for _, m := range l.Members {
		resp.Members = append(resp.Members, MemberToResponse(m))
	}
	for _, t := range l.Tasks {
		resp.Tasks = append(resp.Tasks, TaskToResponse(t))
	}
	return resp
}

func TodoListsToResponse(lists []model.TodoList) []TodoListResponse {
	out := make([]TodoListResponse, 0, len(lists))
	for _, l := range lists {
		out = append(out, TodoListToResponse(l))
	}
	return out
}

func UserToResponse(u model.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
