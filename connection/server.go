package connection

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"todoapp/controller/auth"
	"todoapp/controller/comment"
	"todoapp/controller/tag"
	"todoapp/controller/task"
	"todoapp/controller/todolist"
	"todoapp/controller/user"
)

func StartServer() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: No .env file found or failed to load") // Use only in dev
	}

	db, err := OpenDatabase(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	router.Use(cors.Default())

	auth.SignInController(router, db)
	auth.SignUpController(router, db)
	auth.RefreshTokenController(router, db)
	auth.OTPController(router, db)
	user.UserController(router, db)
	todolist.TodoListController(router, db)
	task.TaskController(router, db)
	tag.TagController(router, db)
	comment.CommentController(router, db)

	if err := router.Run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
