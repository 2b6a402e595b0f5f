package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todoapp/controller/respond"
	"todoapp/dto"
	"todoapp/middleware"
	"todoapp/services"
)

func UserController(router *gin.Engine, db *gorm.DB) {
	service := services.NewUserService(db)

	routes := router.Group("/user", middleware.AccessTokenMiddleware())
	{
		routes.POST("/search", func(c *gin.Context) {
			SearchUser(c, service)
		})
		routes.GET("/me", func(c *gin.Context) {
			GetProfile(c, service)
		})
	}
}

// SearchUser feeds the member-picker: substring match on email or name.
func SearchUser(c *gin.Context, service *services.UserService) {
	var request dto.SearchUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	users, err := service.Search(c.Request.Context(), request.Query)
	if err != nil {
		respond.Error(c, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.UserToResponse(u))
	}
	c.JSON(http.StatusOK, responses)
}

func GetProfile(c *gin.Context, service *services.UserService) {
	userID := c.MustGet("userId").(string)

	u, err := service.GetByID(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserToResponse(*u))
}
