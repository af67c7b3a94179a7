package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyPrivate Privacy = "private"
)

// Album groups media under a single owner. The sharelink is the opaque token
// contributors use to reach it; it is assigned once and never reassigned.
type Album struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	Sharelink uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"sharelink"`
	Privacy   Privacy   `gorm:"size:10;default:'private'" json:"privacy"`

	// S3 key of the cover image, empty if none set.
	CoverImage string `gorm:"type:text" json:"cover_image"`

	CreatedAt time.Time `gorm:"type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz" json:"updated_at"`
}

func (Album) TableName() string {
	return "albums"
}

func (a *Album) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Sharelink == uuid.Nil {
		a.Sharelink = uuid.New()
	}
	return
}
