package routes

import (
	"github.com/ibrahimbiplob75/taskhub/middleware"
	"github.com/ibrahimbiplob75/taskhub/services"

	"github.com/gin-gonic/gin"
)

// RegisterEventRoutes exposes the websocket stream that relays entity
// change events to connected clients.
func RegisterEventRoutes(group *gin.RouterGroup, streamService services.EventStreamServiceInterface, authService services.AuthServiceInterface) {
	protected := group.Group("", middleware.AuthMiddleware(authService))
	protected.GET("/events", streamService.HandleConnection)
}
