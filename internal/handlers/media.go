package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"memory-backend/config"
	"memory-backend/internal/database"
	"memory-backend/internal/middleware"
	"memory-backend/internal/models"
)

// GetUploadURL hands a contributor a pre-signed PUT URL for the album's
// bucket. The sharelink itself is the capability; no other auth is needed.
func GetUploadURL(c *fiber.Ctx) error {
	album, err := albumBySharelink(c.Params("sharelink"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Album not found"})
	}

	mediaType := models.MediaType(c.Query("media_type", "image"))
	ext, ok := uploadExtension(mediaType)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "media_type must be image or video for uploads",
			"field": "media_type",
		})
	}

	if database.S3Client == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Storage not configured"})
	}

	// Key layout: albums/{album_id}/pending/{uuid}.{ext}
	fileID := uuid.New()
	key := fmt.Sprintf("albums/%s/pending/%s%s", album.ID.String(), fileID.String(), ext)

	expiresIn := 1 * time.Hour
	uploadURL, err := database.GeneratePresignedUploadURL(c.Context(), config.Cfg.S3BucketMedia, key, expiresIn)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate upload URL"})
	}

	return c.JSON(fiber.Map{
		"upload_url": uploadURL,
		"file_key":   key,
		"expires_in": int(expiresIn.Seconds()),
		"method":     "PUT",
	})
}

func uploadExtension(t models.MediaType) (string, bool) {
	switch t {
	case models.MediaTypeImage:
		return ".jpg", true
	case models.MediaTypeVideo:
		return ".mp4", true
	}
	return "", false
}

type CreateUploadRequest struct {
	FileKey     string `json:"file_key"`
	FileSize    int64  `json:"file_size"`
	MediaType   string `json:"media_type"`
	Description string `json:"description"`
	Tags        string `json:"tags"`

	// Accepted but never honored: contributors cannot self-approve.
	ApprovalStatus string `json:"approval_status"`
}

// CreatePendingUpload registers a contributor submission against the album
// behind the sharelink. The row starts pending; only the owner can move it.
func CreatePendingUpload(c *fiber.Ctx) error {
	album, err := albumBySharelink(c.Params("sharelink"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Album not found"})
	}

	var req CreateUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if !models.ValidMediaType(models.MediaType(req.MediaType)) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Unsupported media type %q, must be one of image, video, link", req.MediaType),
			"field": "media_type",
		})
	}
	if req.FileKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file_key is required",
			"field": "file_key",
		})
	}
	if req.FileSize < 0 || req.FileSize > models.MaxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File size exceeds the allowed limit of 10 MiB",
			"field": "file_size",
		})
	}

	if err := checkUploadRateLimit(c, album); err != nil {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":       "Rate limit exceeded",
			"retry_after": 86400,
		})
	}

	pending := models.PendingUpload{
		AlbumID:     album.ID,
		FileKey:     req.FileKey,
		FileSize:    req.FileSize,
		MediaType:   models.MediaType(req.MediaType),
		Description: req.Description,
		Tags:        req.Tags,
		// req.ApprovalStatus is discarded: submissions always start pending.
		ApprovalStatus: models.StatusPending,
	}
	if err := database.DB.Create(&pending).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create upload"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":    newPendingPublicView(pending, album.Title),
		"message": "Media content added successfully",
	})
}

// checkUploadRateLimit enforces the per-sharelink+IP counter via Redis.
// Redis being down never blocks a contributor.
func checkUploadRateLimit(c *fiber.Ctx, album models.Album) error {
	if database.RedisClient == nil {
		return nil
	}

	key := fmt.Sprintf("upload_rate:%s:%s", album.Sharelink.String(), c.IP())
	ctx := c.Context()

	count, err := database.RedisClient.Get(ctx, key).Int()
	if err == nil && count >= config.Cfg.UploadRateLimit {
		return fmt.Errorf("rate limit exceeded")
	}

	pipe := database.RedisClient.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 24*time.Hour)
	pipe.Exec(ctx)
	return nil
}

// ListMedia returns the album's published media. Owners see moderation
// fields and may filter on status; everyone else gets the public view.
func ListMedia(c *fiber.Ctx) error {
	album, err := albumBySharelink(c.Params("sharelink"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Album not found"})
	}

	actor := middleware.ActorFromCtx(c)
	isOwner := actor.Owns(album)

	query := database.DB.Where("album_id = ?", album.ID).Order("updated_at DESC")

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(description) LIKE ? OR LOWER(tags) LIKE ?", pattern, pattern)
	}
	if mediaType := c.Query("type", "all"); mediaType != "all" && mediaType != "" {
		query = query.Where("media_type = ?", mediaType)
	}

	status := c.Query("status", "all")
	if isOwner {
		if status != "all" && status != "" {
			query = query.Where("approval_status = ?", status)
		}
	} else {
		// Anonymous viewers only ever see approved items, whatever they ask for.
		query = query.Where("approval_status = ?", models.StatusApproved)
	}

	var items []models.Media
	if err := query.Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch media"})
	}

	if isOwner {
		views := make([]MediaOwnerView, len(items))
		for i, m := range items {
			views[i] = newMediaOwnerView(m, album.Title)
		}
		return c.JSON(fiber.Map{"data": views, "count": len(views)})
	}

	views := make([]MediaPublicView, len(items))
	for i, m := range items {
		views[i] = newMediaPublicView(m, album.Title)
	}
	return c.JSON(fiber.Map{"data": views, "count": len(views)})
}

// DeleteMedia removes a published item from the album. Owner only.
func DeleteMedia(c *fiber.Ctx) error {
	album, err := albumBySharelink(c.Params("sharelink"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Album not found"})
	}

	actor := middleware.ActorFromCtx(c)
	if !actor.Owns(album) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Media not found"})
	}

	mediaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Media not found"})
	}

	var media models.Media
	if err := database.DB.First(&media, "id = ? AND album_id = ?", mediaID, album.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Media not found"})
	}

	if err := database.DB.Delete(&media).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete media"})
	}

	// Stored bytes go best-effort; the row is already gone.
	if database.S3Client != nil && media.FileKey != "" {
		_ = database.DeleteObject(c.Context(), config.Cfg.S3BucketMedia, media.FileKey)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
