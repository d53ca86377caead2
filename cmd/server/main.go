package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"y4d-cms/internal/adapters/http/middleware"
	"y4d-cms/internal/adapters/http/routes"
	"y4d-cms/internal/adapters/persistence/models"
	"y4d-cms/internal/adapters/persistence/repositories"
	"y4d-cms/internal/config"
	"y4d-cms/internal/core/services"

	_ "y4d-cms/docs" // Swagger docs

	"github.com/gofiber/fiber/v2"
)

// @title Y4D CMS API
// @version 1.0
// @description Content management and authorization backend for the Y4D Foundation website.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@y4d.ngo

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.y4d.ngo
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed super admin and section catalog
	if err := config.SeedDatabase(db, cfg); err != nil {
		log.Fatalf("❌ Failed to seed database: %v", err)
	}

	// Start maintenance scheduler (expired refresh token purge)
	maintenanceService := services.NewMaintenanceService(repositories.NewRefreshTokenRepository(db))
	if err := maintenanceService.Start(); err != nil {
		log.Fatalf("❌ Failed to start maintenance scheduler: %v", err)
	}
	defer maintenanceService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Y4D CMS API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	otpService := routes.Setup(app, db, cfg)
	defer otpService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
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
