package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"consent-backend/config"
	"consent-backend/controllers"
	"consent-backend/routes"
	"consent-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET is not defined")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	db := config.DB

	// Services
	projectService := services.NewProjectService(db)
	consentService := services.NewConsentService(db)
	catalogService := services.NewCookieCatalogService(db)
	consentLogService := services.NewConsentLogService(db)
	analyticsService := services.NewAnalyticsService(db)
	adminService := services.NewAdminService(db, jwtSecret)

	// Controllers
	publicController := controllers.NewPublicController(projectService, consentService)
	authController := controllers.NewAuthController(adminService)
	projectController := controllers.NewProjectController(projectService)
	cookieController := controllers.NewCookieController(catalogService)
	consentLogController := controllers.NewConsentLogController(consentLogService)
	analyticsController := controllers.NewAnalyticsController(analyticsService)

	router := routes.SetupRouter(
		publicController,
		authController,
		projectController,
		cookieController,
		consentLogController,
		analyticsController,
		jwtSecret,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped gracefully")
}
