package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Build is an artifact owned by a team. The row is created with Size 0
// paired with an upload grant; the size is reported back once the uploader
// finishes. ShortID is the public, shareable download identifier and is
// unique across all builds.
type Build struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Version   string    `gorm:"type:varchar(255);not null" json:"version"`
	Path      string    `gorm:"type:varchar(1024);not null" json:"path"`
	Size      int64     `gorm:"default:0;not null" json:"size"`
	ShortID   string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"short_id"`
	CreatedBy uuid.UUID `gorm:"type:uuid;index;not null" json:"created_by"`
	TeamID    uuid.UUID `gorm:"type:uuid;index;not null" json:"team_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for Build
func (Build) TableName() string {
	return "builds"
}

// BeforeCreate hook to generate UUID if not set
func (b *Build) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
