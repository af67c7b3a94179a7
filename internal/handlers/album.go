package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"memory-backend/internal/database"
	"memory-backend/internal/middleware"
	"memory-backend/internal/models"
)

type AlbumRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Privacy     string `json:"privacy"`
	CoverImage  string `json:"cover_image"`
}

// CreateAlbum creates an album owned by the caller. The sharelink token is
// assigned on creation and never changes.
func CreateAlbum(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var req AlbumRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" || len(req.Title) > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required and must be at most 100 characters",
			"field": "title",
		})
	}

	album := models.Album{
		OwnerID:     actor.ID,
		Title:       req.Title,
		Description: req.Description,
		Privacy:     models.PrivacyPrivate,
		CoverImage:  req.CoverImage,
	}
	if req.Privacy != "" {
		if req.Privacy != string(models.PrivacyPublic) && req.Privacy != string(models.PrivacyPrivate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Privacy must be public or private",
				"field": "privacy",
			})
		}
		album.Privacy = models.Privacy(req.Privacy)
	}

	if err := database.DB.Create(&album).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create album"})
	}

	return c.Status(fiber.StatusCreated).JSON(album)
}

// ListAlbums returns the caller's albums.
func ListAlbums(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var albums []models.Album
	if err := database.DB.Where("owner_id = ?", actor.ID).Order("created_at DESC").Find(&albums).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch albums"})
	}
	return c.JSON(fiber.Map{"albums": albums, "count": len(albums)})
}

// GetAlbum returns one of the caller's albums by id.
func GetAlbum(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	album, err := ownedAlbum(c.Params("id"), actor.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Album not found"})
	}
	return c.JSON(album)
}

// UpdateAlbum updates title/description/privacy/cover of the caller's album.
// The sharelink is immutable; any supplied value is ignored.
func UpdateAlbum(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	album, err := ownedAlbum(c.Params("id"), actor.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Album not found"})
	}

	var req AlbumRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Title != "" {
		if len(req.Title) > 100 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Title must be at most 100 characters",
				"field": "title",
			})
		}
		album.Title = req.Title
	}
	if req.Description != "" {
		album.Description = req.Description
	}
	if req.Privacy != "" {
		if req.Privacy != string(models.PrivacyPublic) && req.Privacy != string(models.PrivacyPrivate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Privacy must be public or private",
				"field": "privacy",
			})
		}
		album.Privacy = models.Privacy(req.Privacy)
	}
	if req.CoverImage != "" {
		album.CoverImage = req.CoverImage
	}

	if err := database.DB.Save(&album).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update album"})
	}
	return c.JSON(album)
}

// DeleteAlbum removes an album and everything under it.
func DeleteAlbum(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	album, err := ownedAlbum(c.Params("id"), actor.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Album not found"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PendingUpload{}, "album_id = ?", album.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Media{}, "album_id = ?", album.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Album{}, "id = ?", album.ID).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete album"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ShareAlbum returns the album's shareable link token.
func ShareAlbum(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	album, err := ownedAlbum(c.Params("id"), actor.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Album not found"})
	}
	return c.JSON(fiber.Map{"shareable_link": album.Sharelink})
}

func ownedAlbum(idParam string, ownerID uuid.UUID) (models.Album, error) {
	var album models.Album
	id, err := uuid.Parse(idParam)
	if err != nil {
		return album, gorm.ErrRecordNotFound
	}
	err = database.DB.First(&album, "id = ? AND owner_id = ?", id, ownerID).Error
	return album, err
}

// albumBySharelink resolves a sharelink token to its album. Failure modes
// are collapsed into a single not-found: a bad token must look the same as
// an unknown one.
func albumBySharelink(token string) (models.Album, error) {
	var album models.Album
	sharelink, err := uuid.Parse(token)
	if err != nil {
		return album, gorm.ErrRecordNotFound
	}
	err = database.DB.First(&album, "sharelink = ?", sharelink).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return album, gorm.ErrRecordNotFound
	}
	return album, err
}
