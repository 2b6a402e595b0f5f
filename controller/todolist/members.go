package todolist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/controller/respond"
	"todoapp/dto"
	"todoapp/model"
	"todoapp/services"
)

func AddMember(c *gin.Context, service *services.TodoListService) {
	userID := c.MustGet("userId").(string)
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	var request dto.AddMemberRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := service.AddMember(c.Request.Context(), id, request.UserID, userID); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Member added successfully"})
}

func RemoveMember(c *gin.Context, service *services.TodoListService) {
	userID := c.MustGet("userId").(string)
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}
	memberID := c.Param("memberId")

	if err := service.RemoveMember(c.Request.Context(), id, memberID, userID); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func UpdateMemberRole(c *gin.Context, service *services.TodoListService) {
	userID := c.MustGet("userId").(string)
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}
	memberID := c.Param("memberId")

	var request dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	role, ok := model.ParseRole(request.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	if err := service.UpdateMemberRole(c.Request.Context(), id, memberID, role, userID); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
