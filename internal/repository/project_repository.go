package repository

import (
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithAdmin creates the project and the creator's ADMIN
// membership atomically, so no ownerless project is ever observable.
func (r *GormProjectRepository) CreateWithAdmin(project *models.Project, member *models.ProjectMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		member.ProjectID = project.ID
		return tx.Create(member).Error
	})
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDWithDetails loads the project with members and linked teams
func (r *GormProjectRepository) FindByIDWithDetails(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.
		Preload("Members").
		Preload("Members.Person").
		Preload("Teams").
		Preload("Teams.Team").
		First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListForPerson lists projects reachable via direct membership or a
// linked team.
func (r *GormProjectRepository) ListForPerson(personID uint64, includeArchived bool) ([]models.Project, error) {
	directProjects := r.db.Model(&models.ProjectMember{}).
		Select("project_id").
		Where("person_id = ?", personID)

	memberTeams := r.db.Model(&models.TeamMember{}).
		Select("team_id").
		Where("person_id = ?", personID)
	teamProjects := r.db.Model(&models.ProjectTeam{}).
		Select("project_id").
		Where("team_id IN (?)", memberTeams)

	query := r.db.Where("id IN (?) OR id IN (?)", directProjects, teamProjects)
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// DeleteCascade deletes the project with its memberships, team links,
// and every task's full subtree of tags, watchers, attachments,
// comments, and history.
func (r *GormProjectRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("task_id IN (?)", taskIDs)

		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskWatcher{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskStatusHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTeam{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember adds a project member
func (r *GormProjectRepository) AddMember(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// FindMember finds a specific project member
func (r *GormProjectRepository) FindMember(projectID, personID uint64) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.Where("project_id = ? AND person_id = ?", projectID, personID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMemberRole changes a member's role
func (r *GormProjectRepository) UpdateMemberRole(projectID, personID uint64, role models.ProjectRole) error {
	return r.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND person_id = ?", projectID, personID).
		Update("role", role).Error
}

// RemoveMember removes a project member
func (r *GormProjectRepository) RemoveMember(projectID, personID uint64) error {
	return r.db.Where("project_id = ? AND person_id = ?", projectID, personID).
		Delete(&models.ProjectMember{}).Error
}

// LinkTeam grants a team blanket access to the project
func (r *GormProjectRepository) LinkTeam(link *models.ProjectTeam) error {
	return r.db.Create(link).Error
}

// FindTeamLink finds a project-team link
func (r *GormProjectRepository) FindTeamLink(projectID, teamID uint64) (*models.ProjectTeam, error) {
	var link models.ProjectTeam
	if err := r.db.Where("project_id = ? AND team_id = ?", projectID, teamID).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// UnlinkTeam removes a project-team link
func (r *GormProjectRepository) UnlinkTeam(projectID, teamID uint64) error {
	return r.db.Where("project_id = ? AND team_id = ?", projectID, teamID).
		Delete(&models.ProjectTeam{}).Error
}
