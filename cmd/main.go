package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ibrahimbiplob75/taskhub/broker"
	"github.com/ibrahimbiplob75/taskhub/config"
	"github.com/ibrahimbiplob75/taskhub/database"
	"github.com/ibrahimbiplob75/taskhub/middleware"
	"github.com/ibrahimbiplob75/taskhub/routes"
	"github.com/ibrahimbiplob75/taskhub/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if cfg.NatsURL != "" {
		if err := broker.InitProducer(cfg.NatsURL); err != nil {
			log.Printf("Warning: failed to connect to NATS: %v", err)
			log.Println("The application will continue without event publishing")
		} else {
			defer broker.CloseProducer()
		}
	}

	// The event stream relays broker events to websocket clients.
	streamService := services.NewEventStreamService()
	services.EventStreamServiceInstance = streamService
	streamService.Start(cfg.NatsURL)
	defer streamService.Stop()

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours)
	services.AuthServiceInstance = authService

	userService := services.NewUserService(authService)
	services.UserServiceInstance = userService

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	api := router.Group("/api/v1")
	routes.RegisterAuthRoutes(api, db, authService, userService)
	routes.RegisterUserRoutes(api, db, userService, authService)
	routes.RegisterProjectRoutes(api, db, services.ProjectServiceInstance, services.TaskServiceInstance, authService)
	routes.RegisterTaskRoutes(api, db, services.TaskServiceInstance, authService)
	routes.RegisterMeetingRoutes(api, db, services.MeetingServiceInstance, authService)
	routes.RegisterEventRoutes(api, streamService, authService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		streamService.Stop()
		broker.CloseProducer()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
