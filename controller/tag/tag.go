package tag

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todoapp/controller/respond"
	"todoapp/dto"
	"todoapp/middleware"
	"todoapp/services"
)

func TagController(router *gin.Engine, db *gorm.DB) {
	service := services.NewTagService(db)

	routes := router.Group("/tags", middleware.AccessTokenMiddleware())
	{
		routes.GET("", func(c *gin.Context) {
			GetAll(c, service)
		})
		// First path segment is a tag id for reads and a task id for
		// link mutations; gin requires one shared param name per slot.
		routes.GET("/:id/tasks", func(c *gin.Context) {
			GetTasksByTag(c, service)
		})
		routes.POST("/:id", func(c *gin.Context) {
			AddTagToTask(c, service)
		})
		routes.DELETE("/:id/:tagId", func(c *gin.Context) {
			RemoveTagFromTask(c, service)
		})
	}
}

func GetAll(c *gin.Context, service *services.TagService) {
	userID := c.MustGet("userId").(string)

	tags, err := service.GetAllTags(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TagsToResponse(tags))
}

func GetTasksByTag(c *gin.Context, service *services.TagService) {
	userID := c.MustGet("userId").(string)
	tagID, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	tasks, err := service.GetTasksByTag(c.Request.Context(), tagID, userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TasksToResponse(tasks))
}

func AddTagToTask(c *gin.Context, service *services.TagService) {
	userID := c.MustGet("userId").(string)
	taskID, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	var request dto.AddTagRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	tag, err := service.AddTagToTask(c.Request.Context(), taskID, request.Name, userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TagToResponse(*tag))
}

func RemoveTagFromTask(c *gin.Context, service *services.TagService) {
	userID := c.MustGet("userId").(string)
	taskID, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}
	tagID, ok := respond.ParseID(c, "tagId")
	if !ok {
		return
	}

	if err := service.RemoveTagFromTask(c.Request.Context(), taskID, tagID, userID); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
