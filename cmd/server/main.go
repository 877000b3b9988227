package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gxas-memberhub/internal/adapters/http/middleware"
	"gxas-memberhub/internal/adapters/http/routes"
	"gxas-memberhub/internal/adapters/persistence/models"
	"gxas-memberhub/internal/adapters/persistence/repositories"
	"gxas-memberhub/internal/config"
	"gxas-memberhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Upload directory for message attachments
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Bootstrap admin so the admin-gated routes are reachable on a
	// fresh database
	if err := seedFirstAdmin(db, cfg); err != nil {
		log.Printf("⚠️ Warning: Failed to seed admin account: %v", err)
	}

	// Start the fee watchdog (08:30 daily)
	notifier := services.NewNotificationService(cfg)
	feeAutoService := services.NewFeeAutoService(
		repositories.NewMemberRepository(db),
		repositories.NewFeeRepository(db),
		notifier,
	)
	feeAutoService.Start()
	defer feeAutoService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "GXAS MemberHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// seedFirstAdmin creates the bootstrap admin account when none exists yet.
// Credentials come from ADMIN_USERNAME / ADMIN_EMAIL / ADMIN_PASSWORD; with
// those unset a fresh database simply starts without an admin.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	username := os.Getenv("ADMIN_USERNAME")
	email := os.Getenv("ADMIN_EMAIL")
	pass := os.Getenv("ADMIN_PASSWORD")
	if username == "" || email == "" || pass == "" {
		return nil
	}

	userRepo := repositories.NewUserRepository(db)
	ctx := context.Background()

	if _, err := userRepo.FirstAdmin(ctx); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	authService := services.NewAuthService(userRepo, cfg)
	if _, err := authService.CreateAdmin(ctx, &services.RegisterInput{
		Username: username,
		Email:    email,
		Password: pass,
	}); err != nil {
		return err
	}

	log.Printf("✅ Bootstrap admin account created: %s", username)
	return nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
