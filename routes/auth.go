package routes

import (
	"net/http"

	"github.com/ibrahimbiplob75/taskhub/database"
	"github.com/ibrahimbiplob75/taskhub/middleware"
	"github.com/ibrahimbiplob75/taskhub/services"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(group *gin.RouterGroup, db *database.Database, authService services.AuthServiceInterface, userService services.UserServiceInterface) {
	group.POST("/auth/login", func(c *gin.Context) { login(c, db, authService) })

	protected := group.Group("", middleware.AuthMiddleware(authService))
	protected.GET("/auth/profile", func(c *gin.Context) { profile(c, db, userService) })
}

func login(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	token, user, err := authService.Login(db, credentials.Email, credentials.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func profile(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	userID, ok := requireCaller(c)
	if !ok {
		return
	}

	user, err := userService.GetUserById(db, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
