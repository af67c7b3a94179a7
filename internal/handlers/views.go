package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"memory-backend/config"
	"memory-backend/internal/database"
	"memory-backend/internal/models"
)

// Two fixed output shapes per entity: the owner view carries moderation
// fields, the public view never does. The shape is chosen before
// serialization; nothing is stripped at runtime.

type MediaOwnerView struct {
	ID             uuid.UUID             `json:"id"`
	Album          string                `json:"album"`
	FileKey        string                `json:"file_key"`
	FileSize       int64                 `json:"file_size"`
	URL            string                `json:"url,omitempty"`
	MediaType      models.MediaType      `json:"media_type"`
	Description    string                `json:"description"`
	Tags           string                `json:"tags"`
	ApprovalStatus models.ApprovalStatus `json:"approval_status"`
	CreatedAt      time.Time             `json:"created_at"`
}

type MediaPublicView struct {
	ID          uuid.UUID        `json:"id"`
	Album       string           `json:"album"`
	FileKey     string           `json:"file_key"`
	FileSize    int64            `json:"file_size"`
	URL         string           `json:"url,omitempty"`
	MediaType   models.MediaType `json:"media_type"`
	Description string           `json:"description"`
	Tags        string           `json:"tags"`
	CreatedAt   time.Time        `json:"created_at"`
}

type PendingOwnerView struct {
	ID             uuid.UUID             `json:"id"`
	Album          string                `json:"album"`
	FileKey        string                `json:"file_key"`
	FileSize       int64                 `json:"file_size"`
	URL            string                `json:"url,omitempty"`
	MediaType      models.MediaType      `json:"media_type"`
	Description    string                `json:"description"`
	Tags           string                `json:"tags"`
	ApprovalStatus models.ApprovalStatus `json:"approval_status"`
	CreatedAt      time.Time             `json:"created_at"`
}

type PendingPublicView struct {
	ID          uuid.UUID        `json:"id"`
	Album       string           `json:"album"`
	FileKey     string           `json:"file_key"`
	FileSize    int64            `json:"file_size"`
	MediaType   models.MediaType `json:"media_type"`
	Description string           `json:"description"`
	Tags        string           `json:"tags"`
	CreatedAt   time.Time        `json:"created_at"`
}

func newMediaOwnerView(m models.Media, albumTitle string) MediaOwnerView {
	return MediaOwnerView{
		ID:             m.ID,
		Album:          albumTitle,
		FileKey:        m.FileKey,
		FileSize:       m.FileSize,
		URL:            downloadURL(m.FileKey),
		MediaType:      m.MediaType,
		Description:    m.Description,
		Tags:           m.Tags,
		ApprovalStatus: m.ApprovalStatus,
		CreatedAt:      m.CreatedAt,
	}
}

func newMediaPublicView(m models.Media, albumTitle string) MediaPublicView {
	return MediaPublicView{
		ID:          m.ID,
		Album:       albumTitle,
		FileKey:     m.FileKey,
		FileSize:    m.FileSize,
		URL:         downloadURL(m.FileKey),
		MediaType:   m.MediaType,
		Description: m.Description,
		Tags:        m.Tags,
		CreatedAt:   m.CreatedAt,
	}
}

func newPendingOwnerView(p models.PendingUpload, albumTitle string) PendingOwnerView {
	return PendingOwnerView{
		ID:             p.ID,
		Album:          albumTitle,
		FileKey:        p.FileKey,
		FileSize:       p.FileSize,
		URL:            downloadURL(p.FileKey),
		MediaType:      p.MediaType,
		Description:    p.Description,
		Tags:           p.Tags,
		ApprovalStatus: p.ApprovalStatus,
		CreatedAt:      p.CreatedAt,
	}
}

func newPendingPublicView(p models.PendingUpload, albumTitle string) PendingPublicView {
	return PendingPublicView{
		ID:          p.ID,
		Album:       albumTitle,
		FileKey:     p.FileKey,
		FileSize:    p.FileSize,
		MediaType:   p.MediaType,
		Description: p.Description,
		Tags:        p.Tags,
		CreatedAt:   p.CreatedAt,
	}
}

// downloadURL returns a pre-signed GET URL for the stored object, or empty
// when blob storage is not connected (links have no stored bytes either).
func downloadURL(fileKey string) string {
	if database.S3Client == nil || fileKey == "" {
		return ""
	}
	url, err := database.GeneratePresignedDownloadURL(context.Background(), config.Cfg.S3BucketMedia, fileKey, 24*time.Hour)
	if err != nil {
		return ""
	}
	return url
}
