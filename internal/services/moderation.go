package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"memory-backend/internal/access"
	"memory-backend/internal/models"
)

// ErrNotFound covers both "no such row" and "not yours": an owner can never
// learn whether another owner's pending upload exists.
var ErrNotFound = errors.New("resource not found")

// ValidationError reports a rejected field on an incoming payload. Safe to
// show the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ModerationService owns the pending → approved/rejected state machine.
// Approval converts the pending upload into published media, deletes the
// pending row and notifies the album owner, all in one transaction.
type ModerationService struct {
	DB     *gorm.DB
	Notify *NotificationService
}

func NewModerationService(db *gorm.DB, notify *NotificationService) *ModerationService {
	return &ModerationService{DB: db, Notify: notify}
}

// ListQueue returns the pending uploads awaiting a decision across all
// albums the actor owns, oldest first.
func (s *ModerationService) ListQueue(actor access.Actor) ([]models.PendingUpload, error) {
	var pending []models.PendingUpload
	err := s.DB.
		Joins("JOIN albums ON albums.id = pending_uploads.album_id").
		Where("albums.owner_id = ? AND pending_uploads.approval_status = ?", actor.ID, models.StatusPending).
		Order("pending_uploads.created_at ASC").
		Preload("Album").
		Find(&pending).Error
	if err != nil {
		return nil, err
	}
	return pending, nil
}

// Get returns a single pending upload if it belongs to one of the actor's
// albums.
func (s *ModerationService) Get(actor access.Actor, id uuid.UUID) (models.PendingUpload, error) {
	return s.getOwned(s.DB, actor, id)
}

func (s *ModerationService) getOwned(db *gorm.DB, actor access.Actor, id uuid.UUID) (models.PendingUpload, error) {
	var pending models.PendingUpload
	err := db.Preload("Album").First(&pending, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pending, ErrNotFound
	}
	if err != nil {
		return pending, err
	}
	if !actor.Owns(pending.Album) {
		return pending, ErrNotFound
	}
	return pending, nil
}

// DecideRequest is the partial update an owner sends against a pending
// upload. Nil fields are left untouched.
type DecideRequest struct {
	ApprovalStatus *models.ApprovalStatus
	Description    *string
	Tags           *string
}

// Decision is the outcome of a moderation update: exactly one of Published
// or Pending is set. Published means the upload was approved and converted.
type Decision struct {
	Published *models.Media
	Pending   *models.PendingUpload
}

// Decide applies a partial update to a pending upload. A status of
// "approved" runs the conversion; any other update is persisted directly on
// the pending row.
func (s *ModerationService) Decide(ctx context.Context, actor access.Actor, id uuid.UUID, req DecideRequest) (Decision, error) {
	if req.ApprovalStatus != nil && !models.ValidApprovalStatus(*req.ApprovalStatus) {
		return Decision{}, &ValidationError{Field: "approval_status", Message: "must be one of pending, approved, rejected"}
	}

	var decision Decision
	var notification models.Notification

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pending, err := s.getOwned(tx, actor, id)
		if err != nil {
			return err
		}

		if req.Description != nil {
			pending.Description = *req.Description
		}
		if req.Tags != nil {
			pending.Tags = *req.Tags
		}
		if req.ApprovalStatus != nil {
			pending.ApprovalStatus = *req.ApprovalStatus
		}

		if pending.ApprovalStatus != models.StatusApproved {
			if err := tx.Omit(clause.Associations).Save(&pending).Error; err != nil {
				return err
			}
			decision.Pending = &pending
			return nil
		}

		// Conversion. Validate the published record before touching anything
		// so a failure leaves the pending row exactly as it was.
		if !models.ValidMediaType(pending.MediaType) {
			return &ValidationError{Field: "media_type", Message: "unsupported media type"}
		}
		if pending.FileKey == "" {
			return &ValidationError{Field: "file_key", Message: "file_key is required"}
		}

		media := models.Media{
			AlbumID:        pending.AlbumID,
			FileKey:        pending.FileKey,
			FileSize:       pending.FileSize,
			MediaType:      pending.MediaType,
			Description:    pending.Description,
			Tags:           pending.Tags,
			ApprovalStatus: models.StatusApproved,
		}
		if err := tx.Create(&media).Error; err != nil {
			return err
		}
		media.Album = pending.Album

		if err := tx.Delete(&models.PendingUpload{}, "id = ?", pending.ID).Error; err != nil {
			return err
		}

		notification = models.Notification{
			UserID:  pending.Album.OwnerID,
			Message: fmt.Sprintf("%s has been approved by %s.", titleCase(string(pending.MediaType)), actor.Username),
		}
		if err := tx.Create(&notification).Error; err != nil {
			return err
		}

		decision.Published = &media
		return nil
	})
	if err != nil {
		return Decision{}, err
	}

	if decision.Published != nil && s.Notify != nil {
		// Fan-out after commit; delivery failures never undo the approval.
		if err := s.Notify.Push(ctx, notification); err != nil {
			log.Printf("⚠️  Notification push failed: %v", err)
		}
	}

	return decision, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
