package task

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todoapp/controller/respond"
	"todoapp/dto"
	"todoapp/middleware"
	"todoapp/model"
	"todoapp/services"
)

func TaskController(router *gin.Engine, db *gorm.DB) {
	service := services.NewTaskService(db)

	routes := router.Group("/tasks", middleware.AccessTokenMiddleware())
	{
		routes.GET("", func(c *gin.Context) {
			GetAll(c, service)
		})
		routes.GET("/:id", func(c *gin.Context) {
			GetByID(c, service)
		})
		routes.POST("", func(c *gin.Context) {
			Create(c, service)
		})
		routes.PUT("/:id", func(c *gin.Context) {
			Update(c, service)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			Delete(c, service)
		})
		routes.GET("/list/:listId", func(c *gin.Context) {
			GetByListID(c, service)
		})
		routes.GET("/assigned", func(c *gin.Context) {
			GetAssigned(c, service)
		})
		routes.GET("/search", func(c *gin.Context) {
			Search(c, service)
		})
		routes.PATCH("/:id/status", func(c *gin.Context) {
			ChangeStatus(c, service)
		})
		routes.POST("/:id/assign", func(c *gin.Context) {
			Assign(c, service)
		})
	}
}

func GetAll(c *gin.Context, service *services.TaskService) {
	userID := c.MustGet("userId").(string)

	tasks, err := service.GetAllForUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TasksToResponse(tasks))
}

func GetByID(c *gin.Context, service *services.TaskService) {
	userID := c.MustGet("userId").(string)
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	task, err := service.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskToResponse(*task))
}

func Create(c *gin.Context, service *services.TaskService) {
	userID := c.MustGet("userId").(string)
	var request dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	status := model.StatusNotStarted
	if request.Status != "" {
		parsed, ok := model.ParseTaskStatus(request.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
			return
		}
		status = parsed
	}

	task := model.Task{
		TodoListID:  request.TodoListID,
		Title:       request.Title,
		Description: request.Description,
		DueDate:     request.DueDate,
		Status:      status,
	}
	if err := service.Create(c.Request.Context(), &task, userID); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"id":      task.ID,
	})
}

func Update(c *gin.Context, service *services.TaskService) {
	userID := c.MustGet("userId").(string)
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	var request dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if request.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Path and body id do not match"})
		return
	}

	task := model.Task{
		ID:          request.ID,
		Title:       request.Title,
		Description: request.Description,
		DueDate:     request.DueDate,
		Status:      model.TaskStatus(request.Status),
	}
	if err := service.Update(c.Request.Context(), &task, userID); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func Delete(c *gin.Context, service *services.TaskService) {
	userID := c.MustGet("userId").(string)
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	if err := service.Delete(c.Request.Context(), id, userID); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
