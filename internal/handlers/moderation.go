package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"memory-backend/internal/database"
	"memory-backend/internal/middleware"
	"memory-backend/internal/models"
	"memory-backend/internal/services"
)

func moderation() *services.ModerationService {
	return services.NewModerationService(database.DB, services.NotificationSvc)
}

// GetApprovalQueue lists the caller's pending uploads awaiting a decision.
func GetApprovalQueue(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	pending, err := moderation().ListQueue(actor)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch approval queue"})
	}

	views := make([]PendingOwnerView, len(pending))
	for i, p := range pending {
		views[i] = newPendingOwnerView(p, p.Album.Title)
	}
	return c.JSON(fiber.Map{"data": views, "count": len(views)})
}

// GetApprovalItem returns a single pending upload from the caller's queue.
func GetApprovalItem(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pending upload not found"})
	}

	pending, err := moderation().Get(actor, id)
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pending upload not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch pending upload"})
	}

	return c.JSON(newPendingOwnerView(pending, pending.Album.Title))
}

type DecideRequest struct {
	ApprovalStatus *string `json:"approval_status"`
	Description    *string `json:"description"`
	Tags           *string `json:"tags"`
}

// DecideApprovalItem applies an owner's moderation decision. Approval
// returns the new published media; anything else returns the updated
// pending upload.
func DecideApprovalItem(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pending upload not found"})
	}

	var req DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	svcReq := services.DecideRequest{
		Description: req.Description,
		Tags:        req.Tags,
	}
	if req.ApprovalStatus != nil {
		status := models.ApprovalStatus(*req.ApprovalStatus)
		svcReq.ApprovalStatus = &status
	}

	decision, err := moderation().Decide(c.Context(), actor, id, svcReq)
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pending upload not found"})
		case errors.As(err, &vErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Message, "field": vErr.Field})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update pending upload"})
		}
	}

	if decision.Published != nil {
		return c.JSON(newMediaOwnerView(*decision.Published, decision.Published.Album.Title))
	}
	return c.JSON(newPendingOwnerView(*decision.Pending, decision.Pending.Album.Title))
}
