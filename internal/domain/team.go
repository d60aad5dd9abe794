package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultMaxBuilds is the build cap applied to teams that don't set one.
const DefaultMaxBuilds = 5

// Team owns builds and has a many-to-many membership with users, where
// each membership carries an owner flag.
type Team struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	Description    string     `gorm:"type:text" json:"description"`
	OrganizationID *uuid.UUID `gorm:"type:uuid;index" json:"organization_id,omitempty"`
	MaxBuilds      int        `gorm:"default:5;not null" json:"max_builds"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for Team
func (Team) TableName() string {
	return "teams"
}

// BeforeCreate hook to generate UUID if not set
func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.MaxBuilds == 0 {
		t.MaxBuilds = DefaultMaxBuilds
	}
	return nil
}

// TeamMember links a user to a team. IsOwner marks members who may manage
// the team's membership; a team never loses its last owner.
type TeamMember struct {
	TeamID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"team_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	IsOwner   bool      `gorm:"default:false;not null" json:"is_owner"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for TeamMember
func (TeamMember) TableName() string {
	return "team_members"
}
