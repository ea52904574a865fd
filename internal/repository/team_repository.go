package repository

import (
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"gorm.io/gorm"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// CreateWithOwner creates the team and the creator's OWNER membership
// atomically, so no ownerless team is ever observable.
func (r *GormTeamRepository) CreateWithOwner(team *models.Team, member *models.TeamMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		member.TeamID = team.ID
		return tx.Create(member).Error
	})
}

// FindByID finds a team by ID
func (r *GormTeamRepository) FindByID(id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// ListForPerson lists teams the person is a member of
func (r *GormTeamRepository) ListForPerson(personID uint64) ([]models.Team, error) {
	memberTeams := r.db.Model(&models.TeamMember{}).
		Select("team_id").
		Where("person_id = ?", personID)

	var teams []models.Team
	if err := r.db.Where("id IN (?) OR created_by = ?", memberTeams, personID).
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// Update updates a team
func (r *GormTeamRepository) Update(team *models.Team) error {
	return r.db.Save(team).Error
}

// DeleteCascade deletes the team, its memberships, and its project links
func (r *GormTeamRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).Delete(&models.ProjectTeam{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Team{}, id).Error
	})
}

// AddMember adds a team member
func (r *GormTeamRepository) AddMember(member *models.TeamMember) error {
	return r.db.Create(member).Error
}

// FindMember finds a specific team member
func (r *GormTeamRepository) FindMember(teamID, personID uint64) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.Where("team_id = ? AND person_id = ?", teamID, personID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMemberRole changes a member's role
func (r *GormTeamRepository) UpdateMemberRole(teamID, personID uint64, role models.TeamRole) error {
	return r.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND person_id = ?", teamID, personID).
		Update("role", role).Error
}

// RemoveMember removes a team member
func (r *GormTeamRepository) RemoveMember(teamID, personID uint64) error {
	return r.db.Where("team_id = ? AND person_id = ?", teamID, personID).
		Delete(&models.TeamMember{}).Error
}

// ListMembers lists team members with their person records
func (r *GormTeamRepository) ListMembers(teamID uint64) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := r.db.Preload("Person").
		Where("team_id = ?", teamID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
