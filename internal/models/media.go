package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaTypeLink  MediaType = "link"
)

// ValidMediaType reports whether t is one of the accepted upload types.
func ValidMediaType(t MediaType) bool {
	switch t {
	case MediaTypeImage, MediaTypeVideo, MediaTypeLink:
		return true
	}
	return false
}

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// ValidApprovalStatus reports whether s is a known moderation status.
func ValidApprovalStatus(s ApprovalStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// MaxFileSize is the upper bound for a single contributor upload (10 MiB).
const MaxFileSize = 10 * 1024 * 1024

// PendingUpload is a contributor submission waiting on the album owner.
// Approval converts it into a Media row and deletes it; rejection keeps the
// row in a terminal rejected state.
type PendingUpload struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AlbumID uuid.UUID `gorm:"type:uuid;not null;index" json:"album_id"`
	Album   Album     `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE" json:"-"`

	FileKey  string `gorm:"type:text;not null" json:"file_key"`
	FileSize int64  `gorm:"not null" json:"file_size"`

	MediaType   MediaType `gorm:"size:5;not null" json:"media_type"`
	Description string    `gorm:"type:text" json:"description"`
	Tags        string    `gorm:"size:255" json:"tags"`

	ApprovalStatus ApprovalStatus `gorm:"size:10;default:'pending';index" json:"approval_status"`

	CreatedAt time.Time `gorm:"type:timestamptz" json:"created_at"`
}

func (PendingUpload) TableName() string {
	return "pending_uploads"
}

func (p *PendingUpload) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// Media is a published item. Only the moderation service creates these.
type Media struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AlbumID uuid.UUID `gorm:"type:uuid;not null;index" json:"album_id"`
	Album   Album     `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE" json:"-"`

	FileKey  string `gorm:"type:text;not null" json:"file_key"`
	FileSize int64  `gorm:"not null" json:"file_size"`

	MediaType   MediaType `gorm:"size:5;not null" json:"media_type"`
	Description string    `gorm:"type:text" json:"description"`
	Tags        string    `gorm:"size:255" json:"tags"`

	ApprovalStatus ApprovalStatus `gorm:"size:10;default:'approved'" json:"approval_status"`

	CreatedAt time.Time `gorm:"type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz" json:"updated_at"`
}

func (Media) TableName() string {
	return "media"
}

func (m *Media) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
