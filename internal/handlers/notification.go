package handlers

import (
	"github.com/gofiber/fiber/v2"

	"memory-backend/internal/database"
	"memory-backend/internal/middleware"
	"memory-backend/internal/models"
)

// ListNotifications returns the caller's notifications, newest first.
func ListNotifications(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var notifications []models.Notification
	err := database.DB.
		Where("user_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch notifications"})
	}

	return c.JSON(fiber.Map{"notifications": notifications, "count": len(notifications)})
}
