package models

import "time"

type TeamRole string

const (
	TeamRoleOwner  TeamRole = "OWNER"
	TeamRoleMember TeamRole = "MEMBER"
)

// Valid reports whether the role is one of the known team roles.
func (r TeamRole) Valid() bool {
	return r == TeamRoleOwner || r == TeamRoleMember
}

type Team struct {
	ID          uint64    `gorm:"primarykey" json:"team_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description *string   `gorm:"type:varchar(1000)" json:"description"`
	CreatedBy   uint64    `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Creator  Person        `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Members  []TeamMember  `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Projects []ProjectTeam `gorm:"foreignKey:TeamID" json:"-"`
}

type TeamMember struct {
	TeamID   uint64   `gorm:"primarykey" json:"team_id"`
	PersonID uint64   `gorm:"primarykey" json:"person_id"`
	Role     TeamRole `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"role"`

	// Relations
	Team   Team   `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Person Person `gorm:"foreignKey:PersonID" json:"person,omitempty"`
}
