package todolist

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

func TodoListController(router *gin.Engine, db *gorm.DB) {
	service := services.NewTodoListService(db)

	routes := router.Group("/todolists", middleware.AccessTokenMiddleware())
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
		routes.POST("/:id/members", func(c *gin.Context) {
			AddMember(c, service)
		})
		routes.DELETE("/:id/members/:memberId", func(c *gin.Context) {
			RemoveMember(c, service)
		})
		routes.PATCH("/:id/members/:memberId/role", func(c *gin.Context) {
			UpdateMemberRole(c, service)
		})
	}
}

func GetAll(c *gin.Context, service *services.TodoListService) {
	userID := c.MustGet("userId").(string)

	lists, err := service.GetAll(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TodoListsToResponse(lists))
}

func GetByID(c *gin.Context, service *services.TodoListService) {
	userID := c.MustGet("userId").(string)
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	list, err := service.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TodoListToResponse(*list))
}

func Create(c *gin.Context, service *services.TodoListService) {
	userID := c.MustGet("userId").(string)
	var request dto.CreateTodoListRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	list := model.TodoList{
		Title:       request.Title,
		Description: request.Description,
	}
	if err := service.Create(c.Request.Context(), &list, userID); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "List created successfully",
		"id":      list.ID,
	})
}

func Update(c *gin.Context, service *services.TodoListService) {
	userID := c.MustGet("userId").(string)
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	var request dto.UpdateTodoListRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if request.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Path and body id do not match"})
		return
	}

	list := model.TodoList{
		ID:          request.ID,
		Title:       request.Title,
		Description: request.Description,
	}
	if err := service.Update(c.Request.Context(), &list, userID); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func Delete(c *gin.Context, service *services.TodoListService) {
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
