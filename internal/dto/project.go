package dto

import (
	"time"

	"github.com/AranyaAryaman/noJIRA/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"project_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedBy   uint64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	IsArchived  bool      `json:"is_archived"`
}

// ProjectMemberDTO represents a member in a project
type ProjectMemberDTO struct {
	Person PersonBriefDTO     `json:"person"`
	Role   models.ProjectRole `json:"role"`
}

// ProjectDetailDTO represents a project with members and linked teams
type ProjectDetailDTO struct {
	ProjectDTO
	Members []ProjectMemberDTO `json:"members"`
	Teams   []TeamDTO          `json:"teams"`
}

// ToProjectDTO converts a project to DTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedBy:   project.CreatedBy,
		CreatedAt:   project.CreatedAt,
		IsArchived:  project.IsArchived,
	}
}

// ToProjectDTOs converts a slice of projects to DTOs
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}

// ToProjectDetailDTO converts a project with preloaded members and
// teams to its detailed form
func ToProjectDetailDTO(project models.Project) ProjectDetailDTO {
	members := make([]ProjectMemberDTO, len(project.Members))
	for i, m := range project.Members {
		members[i] = ProjectMemberDTO{
			Person: PersonBriefDTO{ID: m.Person.ID, Name: m.Person.Name},
			Role:   m.Role,
		}
	}

	teams := make([]TeamDTO, len(project.Teams))
	for i, t := range project.Teams {
		teams[i] = ToTeamDTO(t.Team)
	}

	return ProjectDetailDTO{
		ProjectDTO: ToProjectDTO(project),
		Members:    members,
		Teams:      teams,
	}
}
