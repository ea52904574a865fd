package services

import (
	"errors"

	"github.com/AranyaAryaman/noJIRA/internal/access"
	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"github.com/AranyaAryaman/noJIRA/internal/repository"
	"gorm.io/gorm"
)

// TeamService handles team lifecycle and membership
type TeamService struct {
	teamRepo   repository.TeamRepository
	personRepo repository.PersonRepository
	access     *access.Engine
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo repository.TeamRepository, personRepo repository.PersonRepository, engine *access.Engine) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		personRepo: personRepo,
		access:     engine,
	}
}

// CreateTeamInput represents input for creating a team
type CreateTeamInput struct {
	Name        string
	Description *string
}

// UpdateTeamInput represents a partial team update
type UpdateTeamInput struct {
	Name        *string
	Description *string
}

// CreateTeam creates a team with the creator enrolled as OWNER.
func (s *TeamService) CreateTeam(actor *models.Person, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, apperrors.Validation("Team name is required")
	}

	team := &models.Team{
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   actor.ID,
	}
	owner := &models.TeamMember{
		PersonID: actor.ID,
		Role:     models.TeamRoleOwner,
	}

	if err := s.teamRepo.CreateWithOwner(team, owner); err != nil {
		return nil, apperrors.Internal("Failed to create team", err)
	}
	return team, nil
}

// GetTeam returns a team visible to the actor.
func (s *TeamService) GetTeam(teamID uint64, actor *models.Person) (*models.Team, error) {
	team, err := s.access.CheckTeamAccess(teamID, actor, false)
	if err != nil {
		return nil, err
	}
	return team, nil
}

// ListTeams lists the teams the actor belongs to or created.
func (s *TeamService) ListTeams(actor *models.Person) ([]models.Team, error) {
	teams, err := s.teamRepo.ListForPerson(actor.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list teams", err)
	}
	return teams, nil
}

// UpdateTeam applies a partial update. OWNER only.
func (s *TeamService) UpdateTeam(teamID uint64, actor *models.Person, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.access.CheckTeamAccess(teamID, actor, true)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.Validation("Team name cannot be empty")
		}
		team.Name = *input.Name
	}
	if input.Description != nil {
		team.Description = input.Description
	}

	if err := s.teamRepo.Update(team); err != nil {
		return nil, apperrors.Internal("Failed to update team", err)
	}
	return team, nil
}

// DeleteTeam deletes a team, its memberships, and its project links.
// Projects themselves are untouched. OWNER only.
func (s *TeamService) DeleteTeam(teamID uint64, actor *models.Person) error {
	if _, err := s.access.CheckTeamAccess(teamID, actor, true); err != nil {
		return err
	}

	if err := s.teamRepo.DeleteCascade(teamID); err != nil {
		return apperrors.Internal("Failed to delete team", err)
	}
	return nil
}

// AddMember enrolls a person into a team. OWNER only.
func (s *TeamService) AddMember(teamID uint64, actor *models.Person, personID uint64, role models.TeamRole) (*models.TeamMember, error) {
	if _, err := s.access.CheckTeamAccess(teamID, actor, true); err != nil {
		return nil, err
	}

	if role == "" {
		role = models.TeamRoleMember
	}
	if !role.Valid() {
		return nil, apperrors.Validation("Invalid team role")
	}

	if _, err := s.personRepo.FindByID(personID); err != nil {
		return nil, apperrors.NotFound("Person not found")
	}

	if _, err := s.teamRepo.FindMember(teamID, personID); err == nil {
		return nil, apperrors.Conflict("Person is already a team member")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("Failed to check membership", err)
	}

	member := &models.TeamMember{
		TeamID:   teamID,
		PersonID: personID,
		Role:     role,
	}
	if err := s.teamRepo.AddMember(member); err != nil {
		return nil, apperrors.Internal("Failed to add member", err)
	}
	return member, nil
}

// UpdateMemberRole changes an existing member's role. OWNER only.
func (s *TeamService) UpdateMemberRole(teamID uint64, actor *models.Person, personID uint64, role models.TeamRole) error {
	if _, err := s.access.CheckTeamAccess(teamID, actor, true); err != nil {
		return err
	}

	if !role.Valid() {
		return apperrors.Validation("Invalid team role")
	}

	if _, err := s.teamRepo.FindMember(teamID, personID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Membership not found")
		}
		return apperrors.Internal("Failed to check membership", err)
	}

	if err := s.teamRepo.UpdateMemberRole(teamID, personID, role); err != nil {
		return apperrors.Internal("Failed to update member role", err)
	}
	return nil
}

// RemoveMember removes a person from a team. OWNER only.
func (s *TeamService) RemoveMember(teamID uint64, actor *models.Person, personID uint64) error {
	if _, err := s.access.CheckTeamAccess(teamID, actor, true); err != nil {
		return err
	}

	if _, err := s.teamRepo.FindMember(teamID, personID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Membership not found")
		}
		return apperrors.Internal("Failed to check membership", err)
	}

	if err := s.teamRepo.RemoveMember(teamID, personID); err != nil {
		return apperrors.Internal("Failed to remove member", err)
	}
	return nil
}

// ListMembers lists a team's members with their person records.
func (s *TeamService) ListMembers(teamID uint64, actor *models.Person) ([]models.TeamMember, error) {
	if _, err := s.access.CheckTeamAccess(teamID, actor, false); err != nil {
		return nil, err
	}

	members, err := s.teamRepo.ListMembers(teamID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list members", err)
	}
	return members, nil
}
