package dto

import (
	"time"

	"github.com/AranyaAryaman/noJIRA/internal/models"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID          uint64    `json:"team_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedBy   uint64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeamMemberDTO represents a member in a team
type TeamMemberDTO struct {
	Person PersonBriefDTO  `json:"person"`
	Role   models.TeamRole `json:"role"`
}

// ToTeamDTO converts a team to DTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		CreatedBy:   team.CreatedBy,
		CreatedAt:   team.CreatedAt,
	}
}

// ToTeamDTOs converts a slice of teams to DTOs
func ToTeamDTOs(teams []models.Team) []TeamDTO {
	dtos := make([]TeamDTO, len(teams))
	for i, t := range teams {
		dtos[i] = ToTeamDTO(t)
	}
	return dtos
}

// ToTeamMemberDTO converts a membership to DTO
func ToTeamMemberDTO(member models.TeamMember) TeamMemberDTO {
	return TeamMemberDTO{
		Person: PersonBriefDTO{ID: member.Person.ID, Name: member.Person.Name},
		Role:   member.Role,
	}
}

// ToTeamMemberDTOs converts memberships to DTOs
func ToTeamMemberDTOs(members []models.TeamMember) []TeamMemberDTO {
	dtos := make([]TeamMemberDTO, len(members))
	for i, m := range members {
		dtos[i] = ToTeamMemberDTO(m)
	}
	return dtos
}
