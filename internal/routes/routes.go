package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"memory-backend/config"
	"memory-backend/internal/handlers"
	"memory-backend/internal/middleware"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Health Check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "message": "Memory API is running 📸"})
	})

	// Public routes
	authHandler := handlers.NewAuthHandler(config.Cfg)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/refresh", authHandler.Refresh)

	// Sharelink surface: the token in the path is the only credential a
	// contributor has. Reads honor an optional token so owners see more.
	api.Get("/albums/:sharelink/media", middleware.OptionalAuth, handlers.ListMedia)
	api.Post("/albums/:sharelink/media", handlers.CreatePendingUpload)
	api.Get("/albums/:sharelink/media/upload-url", handlers.GetUploadURL)
	api.Delete("/albums/:sharelink/media/:id", middleware.RequireAuth, handlers.DeleteMedia)

	// Protected routes (require authentication)
	protected := api.Group("", middleware.RequireAuth)

	// Account
	protected.Get("/users/me", handlers.GetMe)

	// Albums
	protected.Post("/albums", handlers.CreateAlbum)
	protected.Get("/albums", handlers.ListAlbums)
	protected.Get("/albums/:id", handlers.GetAlbum)
	protected.Put("/albums/:id", handlers.UpdateAlbum)
	protected.Delete("/albums/:id", handlers.DeleteAlbum)
	protected.Get("/albums/:id/share", handlers.ShareAlbum)

	// Moderation queue
	protected.Get("/approval-queue", handlers.GetApprovalQueue)
	protected.Get("/approval-queue/:id", handlers.GetApprovalItem)
	protected.Put("/approval-queue/:id", handlers.DecideApprovalItem)

	// Notifications
	protected.Get("/notifications", handlers.ListNotifications)

	// WebSocket (handles auth internally)
	api.Get("/ws", websocket.New(handlers.HandleNotificationSocket))
}
