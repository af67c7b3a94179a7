package main

import (
	"log"

	"memory-backend/config"
	"memory-backend/internal/database"
	"memory-backend/internal/routes"
	"memory-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load Configuration
	cfg := config.LoadConfig()

	// 2. Connect to Database
	database.ConnectDB(cfg)

	// 3. Connect to Redis
	database.ConnectRedis(cfg)

	// 4. Connect to S3/R2
	database.ConnectS3(cfg)

	// 5. Initialize Notification Service
	services.InitNotificationService(cfg.NotifyWebhookURL)

	// 6. Initialize Fiber App
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: "Memory",
	})

	// 7. Middleware
	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Allow all for dev, restrict in prod
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, HEAD, PUT, DELETE, PATCH",
	}))

	// 8. Routes
	routes.SetupRoutes(app)

	// 9. Start Server
	log.Printf("🚀 Server starting on port %s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal("Server failed to start: ", err)
	}
}
