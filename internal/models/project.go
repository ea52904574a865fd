package models

import "time"

type ProjectRole string

const (
	ProjectRoleAdmin  ProjectRole = "ADMIN"
	ProjectRoleMember ProjectRole = "MEMBER"
	ProjectRoleViewer ProjectRole = "VIEWER"
)

// projectRoleRank orders project roles for "at least this privileged"
// comparisons. Unknown roles rank zero and never satisfy a requirement.
var projectRoleRank = map[ProjectRole]int{
	ProjectRoleAdmin:  3,
	ProjectRoleMember: 2,
	ProjectRoleViewer: 1,
}

// Rank returns the privilege rank of the role.
func (r ProjectRole) Rank() int {
	return projectRoleRank[r]
}

// AtLeast reports whether the role is at least as privileged as min.
func (r ProjectRole) AtLeast(min ProjectRole) bool {
	return r.Rank() >= min.Rank()
}

// Valid reports whether the role is one of the known project roles.
func (r ProjectRole) Valid() bool {
	return r.Rank() > 0
}

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"project_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description *string   `gorm:"type:varchar(2000)" json:"description"`
	CreatedBy   uint64    `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	IsArchived  bool      `gorm:"not null;default:false" json:"is_archived"`

	// Relations
	Creator Person          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Teams   []ProjectTeam   `gorm:"foreignKey:ProjectID" json:"teams,omitempty"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

type ProjectMember struct {
	ProjectID uint64      `gorm:"primarykey" json:"project_id"`
	PersonID  uint64      `gorm:"primarykey" json:"person_id"`
	Role      ProjectRole `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"role"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Person  Person  `gorm:"foreignKey:PersonID" json:"person,omitempty"`
}

// ProjectTeam grants every member of a team blanket access to a project.
type ProjectTeam struct {
	ProjectID uint64 `gorm:"primarykey" json:"project_id"`
	TeamID    uint64 `gorm:"primarykey" json:"team_id"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Team    Team    `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}
