package routes

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ibrahimbiplob75/taskhub/services"
	"github.com/ibrahimbiplob75/taskhub/utils/token"
)

const testSecret = "test-secret"

func testAuthService() services.AuthServiceInterface {
	return services.NewAuthService(testSecret, 1)
}

func testRouter() (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router, router.Group("/api/v1")
}

func bearerToken(t *testing.T, userID uint) string {
	tokenString, err := token.GenerateToken(userID, "user@example.com", "Test User", []byte(testSecret), time.Hour)
	assert.NoError(t, err)
	return "Bearer " + tokenString
}
