package models

import "time"

type Person struct {
	ID           uint64    `gorm:"primarykey" json:"person_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Nickname     *string   `gorm:"type:varchar(100)" json:"nickname"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	TeamMemberships    []TeamMember    `gorm:"foreignKey:PersonID" json:"-"`
	ProjectMemberships []ProjectMember `gorm:"foreignKey:PersonID" json:"-"`
	AssignedTasks      []Task          `gorm:"foreignKey:AssigneeID" json:"-"`
	CreatedTasks       []Task          `gorm:"foreignKey:CreatedBy" json:"-"`
	Comments           []Comment       `gorm:"foreignKey:PersonID" json:"-"`
	WatchedTasks       []TaskWatcher   `gorm:"foreignKey:PersonID" json:"-"`
}
