package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"taskhive/taskhive/broker"
	"taskhive/taskhive/config"
	"taskhive/taskhive/database"
	"taskhive/taskhive/middleware"
	"taskhive/taskhive/routes"
	"taskhive/taskhive/services"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Event publishing is best-effort: without NATS the API still works,
	// only the live event stream goes quiet.
	if err := broker.InitProducer(cfg); err != nil {
		log.Printf("Warning: failed to initialize NATS producer: %v", err)
		log.Println("The application will continue, but events will not be published")
	} else {
		defer broker.CloseProducer()
	}

	webSocketService := services.NewWebSocketService()
	services.WebSocketServiceInstance = webSocketService
	webSocketService.Start(cfg)
	defer webSocketService.Stop()

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours)
	services.AuthServiceInstance = authService

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	routes.RegisterAuthRoutes(router, db, authService)
	routes.RegisterWebSocketRoutes(router, webSocketService, []byte(cfg.JWTSecret))

	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(authService))
	routes.RegisterTaskRoutes(protected, db, services.TaskServiceInstance)
	routes.RegisterUserRoutes(protected, db, services.UserServiceInstance)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		broker.CloseProducer()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
