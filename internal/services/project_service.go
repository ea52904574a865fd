package services

import (
	"errors"

	"github.com/AranyaAryaman/noJIRA/internal/access"
	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"github.com/AranyaAryaman/noJIRA/internal/repository"
	"gorm.io/gorm"
)

// ProjectService handles project lifecycle, membership, and team links
type ProjectService struct {
	projectRepo repository.ProjectRepository
	personRepo  repository.PersonRepository
	access      *access.Engine
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, personRepo repository.PersonRepository, engine *access.Engine) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		personRepo:  personRepo,
		access:      engine,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description *string
}

// UpdateProjectInput represents a partial project update
type UpdateProjectInput struct {
	Name        *string
	Description *string
	IsArchived  *bool
}

// CreateProject creates a project with the creator enrolled as ADMIN.
func (s *ProjectService) CreateProject(actor *models.Person, input CreateProjectInput) (*models.Project, error) {
	if input.Name == "" {
		return nil, apperrors.Validation("Project name is required")
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   actor.ID,
	}
	admin := &models.ProjectMember{
		PersonID: actor.ID,
		Role:     models.ProjectRoleAdmin,
	}

	if err := s.projectRepo.CreateWithAdmin(project, admin); err != nil {
		return nil, apperrors.Internal("Failed to create project", err)
	}
	return project, nil
}

// GetProject returns a project with members and linked teams.
func (s *ProjectService) GetProject(projectID uint64, actor *models.Person) (*models.Project, error) {
	if _, err := s.access.CheckProjectAccess(projectID, actor, models.ProjectRoleViewer); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByIDWithDetails(projectID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load project", err)
	}
	return project, nil
}

// ListProjects lists the projects visible to the actor, whether through
// direct membership, team links, or creation.
func (s *ProjectService) ListProjects(actor *models.Person, includeArchived bool) ([]models.Project, error) {
	projects, err := s.projectRepo.ListForPerson(actor.ID, includeArchived)
	if err != nil {
		return nil, apperrors.Internal("Failed to list projects", err)
	}
	return projects, nil
}

// UpdateProject applies a partial update. ADMIN only.
func (s *ProjectService) UpdateProject(projectID uint64, actor *models.Person, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.access.CheckProjectAdmin(projectID, actor)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.Validation("Project name cannot be empty")
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = input.Description
	}
	if input.IsArchived != nil {
		project.IsArchived = *input.IsArchived
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, apperrors.Internal("Failed to update project", err)
	}
	return project, nil
}

// DeleteProject deletes a project and everything under it: members,
// team links, and every task with its full subtree of comments,
// attachments, tags, watchers, and history.
func (s *ProjectService) DeleteProject(projectID uint64, actor *models.Person) error {
	if _, err := s.access.CheckProjectAdmin(projectID, actor); err != nil {
		return err
	}

	if err := s.projectRepo.DeleteCascade(projectID); err != nil {
		return apperrors.Internal("Failed to delete project", err)
	}
	return nil
}

// AddMember enrolls a person into a project with the given role. ADMIN only.
func (s *ProjectService) AddMember(projectID uint64, actor *models.Person, personID uint64, role models.ProjectRole) (*models.ProjectMember, error) {
	if _, err := s.access.CheckProjectAdmin(projectID, actor); err != nil {
		return nil, err
	}

	if !role.Valid() {
		return nil, apperrors.Validation("Invalid project role")
	}

	if _, err := s.personRepo.FindByID(personID); err != nil {
		return nil, apperrors.NotFound("Person not found")
	}

	if _, err := s.projectRepo.FindMember(projectID, personID); err == nil {
		return nil, apperrors.Conflict("Person is already a project member")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("Failed to check membership", err)
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		PersonID:  personID,
		Role:      role,
	}
	if err := s.projectRepo.AddMember(member); err != nil {
		return nil, apperrors.Internal("Failed to add member", err)
	}
	return member, nil
}

// UpdateMemberRole changes an existing member's role. ADMIN only.
func (s *ProjectService) UpdateMemberRole(projectID uint64, actor *models.Person, personID uint64, role models.ProjectRole) error {
	if _, err := s.access.CheckProjectAdmin(projectID, actor); err != nil {
		return err
	}

	if !role.Valid() {
		return apperrors.Validation("Invalid project role")
	}

	if _, err := s.projectRepo.FindMember(projectID, personID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Membership not found")
		}
		return apperrors.Internal("Failed to check membership", err)
	}

	if err := s.projectRepo.UpdateMemberRole(projectID, personID, role); err != nil {
		return apperrors.Internal("Failed to update member role", err)
	}
	return nil
}

// RemoveMember removes a person from a project. ADMIN only.
func (s *ProjectService) RemoveMember(projectID uint64, actor *models.Person, personID uint64) error {
	if _, err := s.access.CheckProjectAdmin(projectID, actor); err != nil {
		return err
	}

	if _, err := s.projectRepo.FindMember(projectID, personID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Membership not found")
		}
		return apperrors.Internal("Failed to check membership", err)
	}

	if err := s.projectRepo.RemoveMember(projectID, personID); err != nil {
		return apperrors.Internal("Failed to remove member", err)
	}
	return nil
}

// LinkTeam attaches a team to a project, granting its members blanket
// access below ADMIN. Requires project ADMIN and team visibility.
func (s *ProjectService) LinkTeam(projectID uint64, actor *models.Person, teamID uint64) error {
	if _, err := s.access.CheckProjectAdmin(projectID, actor); err != nil {
		return err
	}

	if _, err := s.access.CheckTeamAccess(teamID, actor, false); err != nil {
		return err
	}

	if _, err := s.projectRepo.FindTeamLink(projectID, teamID); err == nil {
		return apperrors.Conflict("Team is already linked to this project")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Internal("Failed to check team link", err)
	}

	link := &models.ProjectTeam{ProjectID: projectID, TeamID: teamID}
	if err := s.projectRepo.LinkTeam(link); err != nil {
		return apperrors.Internal("Failed to link team", err)
	}
	return nil
}

// UnlinkTeam detaches a team from a project. ADMIN only.
func (s *ProjectService) UnlinkTeam(projectID uint64, actor *models.Person, teamID uint64) error {
	if _, err := s.access.CheckProjectAdmin(projectID, actor); err != nil {
		return err
	}

	if _, err := s.projectRepo.FindTeamLink(projectID, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Team link not found")
		}
		return apperrors.Internal("Failed to check team link", err)
	}

	if err := s.projectRepo.UnlinkTeam(projectID, teamID); err != nil {
		return apperrors.Internal("Failed to unlink team", err)
	}
	return nil
}
