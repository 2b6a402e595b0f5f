package task

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"todoapp/controller/respond"
	"todoapp/dto"
	"todoapp/model"
	"todoapp/services"
)

// GetByListID serves a list view. Missing access yields an empty
// collection rather than 403; the service decides that.
func GetByListID(c *gin.Context, service *services.TaskService) {
	userID := c.MustGet("userId").(string)
	listID, ok := respond.ParseID(c, "listId")
	if !ok {
		return
	}

	tasks, err := service.GetByListID(c.Request.Context(), listID, userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TasksToResponse(tasks))
}

func GetAssigned(c *gin.Context, service *services.TaskService) {
	userID := c.MustGet("userId").(string)

	var status *model.TaskStatus
	if raw := c.Query("status"); raw != "" {
		parsed, ok := model.ParseTaskStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
			return
		}
		status = &parsed
	}

	sortBy := c.DefaultQuery("sortBy", "name")
	ascending := c.DefaultQuery("ascending", "true") != "false"

	tasks, err := service.GetAssigned(c.Request.Context(), userID, status, sortBy, ascending)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TasksToResponse(tasks))
}

func Search(c *gin.Context, service *services.TaskService) {
	userID := c.MustGet("userId").(string)

	var title *string
	if raw := c.Query("title"); raw != "" {
		title = &raw
	}

	dueDate, ok := parseDateQuery(c, "dueDate")
	if !ok {
		return
	}
	createdAt, ok := parseDateQuery(c, "createdAt")
	if !ok {
		return
	}

	tasks, err := service.Search(c.Request.Context(), userID, title, dueDate, createdAt)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TasksToResponse(tasks))
}

func ChangeStatus(c *gin.Context, service *services.TaskService) {
	userID := c.MustGet("userId").(string)
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	raw := c.Query("newStatus")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "newStatus is required"})
		return
	}

	if err := service.ChangeStatus(c.Request.Context(), id, model.TaskStatus(raw), userID); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func Assign(c *gin.Context, service *services.TaskService) {
	userID := c.MustGet("userId").(string)
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	var request dto.AssignTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := service.Assign(c.Request.Context(), id, request.AssigneeID, userID); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseDateQuery accepts RFC3339 or plain dates; only the calendar day
// is used downstream.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
	return nil, false
}
