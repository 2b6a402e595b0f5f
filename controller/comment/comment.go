package comment

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

func CommentController(router *gin.Engine, db *gorm.DB) {
	service := services.NewCommentService(db)

	routes := router.Group("/comments", middleware.AccessTokenMiddleware())
	{
		routes.POST("", func(c *gin.Context) {
			Add(c, service)
		})
		routes.GET("/tasks/:taskId", func(c *gin.Context) {
			GetByTaskID(c, service)
		})
		routes.PUT("/:id", func(c *gin.Context) {
			Update(c, service)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			Delete(c, service)
		})
	}
}

func Add(c *gin.Context, service *services.CommentService) {
	userID := c.MustGet("userId").(string)
	var request dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	comment := model.Comment{
		TaskID: request.TaskID,
		Text:   request.Text,
	}
	if err := service.Add(c.Request.Context(), &comment, userID); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CommentToResponse(comment))
}

func GetByTaskID(c *gin.Context, service *services.CommentService) {
	userID := c.MustGet("userId").(string)
	taskID, ok := respond.ParseID(c, "taskId")
	if !ok {
		return
	}

	comments, err := service.GetByTaskID(c.Request.Context(), taskID, userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CommentsToResponse(comments))
}

func Update(c *gin.Context, service *services.CommentService) {
	userID := c.MustGet("userId").(string)
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	var request dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if request.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Path and body id do not match"})
		return
	}

	comment := model.Comment{
		ID:   request.ID,
		Text: request.Text,
	}
	if err := service.Update(c.Request.Context(), &comment, userID); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func Delete(c *gin.Context, service *services.CommentService) {
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
