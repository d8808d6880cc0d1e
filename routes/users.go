package routes

import (
	"net/http"

	"github.com/ibrahimbiplob75/taskhub/database"
	"github.com/ibrahimbiplob75/taskhub/middleware"
	"github.com/ibrahimbiplob75/taskhub/services"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(group *gin.RouterGroup, db *database.Database, userService services.UserServiceInterface, authService services.AuthServiceInterface) {
	group.POST("/user/create", func(c *gin.Context) { createUser(c, db, userService) })

	protected := group.Group("", middleware.AuthMiddleware(authService))
	protected.GET("/user", func(c *gin.Context) { listUsers(c, db, userService) })
	protected.GET("/user/:id", func(c *gin.Context) { getUser(c, db, userService) })
	protected.POST("/user/:id/update", func(c *gin.Context) { updateUser(c, db, userService) })
}

func createUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	var input services.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := userService.CreateUser(db, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func listUsers(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	users, err := userService.GetUsers(db)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func getUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	user, err := userService.GetUserById(db, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// updateUser lets a user modify their own account only.
func updateUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}
	if id != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify another user's account"})
		return
	}

	var input services.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := userService.UpdateUser(db, id, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
