// Package access implements the authorization engine. Every mutation
// and read in the service layer passes through one of these checks
// before touching data. Decisions are never cached: each call
// re-resolves membership state, so a revoked membership takes effect on
// the next request.
package access

import (
	"errors"
	"fmt"

	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"gorm.io/gorm"
)

// Engine resolves effective permissions for an actor against projects,
// teams, tasks, and comments. A missing resource is always reported as
// not-found, distinct from access-denied, and existence is checked
// before any rule is evaluated.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// CheckProjectAccess resolves access to a project at minRole.
//
// Resolution order:
//  1. creator bypass: the project creator always has full access,
//     independent of membership rows
//  2. direct membership with sufficient rank
//  3. team blanket grant, capped below ADMIN: membership (or creation)
//     of any team linked to the project satisfies VIEWER and MEMBER
//     requirements only
func (e *Engine) CheckProjectAccess(projectID uint64, actor *models.Person, minRole models.ProjectRole) (*models.Project, error) {
	var project models.Project
	if err := e.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Project not found")
		}
		return nil, apperrors.Internal("failed to load project", err)
	}

	if project.CreatedBy == actor.ID {
		return &project, nil
	}

	var member models.ProjectMember
	err := e.db.Where("project_id = ? AND person_id = ?", projectID, actor.ID).First(&member).Error
	switch {
	case err == nil:
		if member.Role.AtLeast(minRole) {
			return &project, nil
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.Internal("failed to load project membership", err)
	}

	if minRole != models.ProjectRoleAdmin {
		linked, err := e.linkedTeamAccess(projectID, actor.ID)
		if err != nil {
			return nil, err
		}
		if linked {
			return &project, nil
		}
	}

	return nil, apperrors.AccessDenied(fmt.Sprintf("Access denied: %s access required", minRole))
}

// linkedTeamAccess reports whether the actor belongs to, or created,
// any team linked to the project.
func (e *Engine) linkedTeamAccess(projectID, personID uint64) (bool, error) {
	linkedTeams := e.db.Model(&models.ProjectTeam{}).
		Select("team_id").
		Where("project_id = ?", projectID)

	var count int64
	err := e.db.Model(&models.TeamMember{}).
		Where("team_id IN (?) AND person_id = ?", linkedTeams, personID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal("failed to resolve team access", err)
	}
	if count > 0 {
		return true, nil
	}

	err = e.db.Model(&models.Team{}).
		Where("id IN (?) AND created_by = ?", linkedTeams, personID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal("failed to resolve team access", err)
	}
	return count > 0, nil
}

// CheckProjectAdmin is CheckProjectAccess at ADMIN. Team blanket grants
// never satisfy it.
func (e *Engine) CheckProjectAdmin(projectID uint64, actor *models.Person) (*models.Project, error) {
	return e.CheckProjectAccess(projectID, actor, models.ProjectRoleAdmin)
}

// CheckTeamAccess resolves access to a team. Any member or the creator
// may read; requireOwner restricts to the creator or OWNER-role members.
func (e *Engine) CheckTeamAccess(teamID uint64, actor *models.Person, requireOwner bool) (*models.Team, error) {
	var team models.Team
	if err := e.db.First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Team not found")
		}
		return nil, apperrors.Internal("failed to load team", err)
	}

	var member *models.TeamMember
	var row models.TeamMember
	err := e.db.Where("team_id = ? AND person_id = ?", teamID, actor.ID).First(&row).Error
	switch {
	case err == nil:
		member = &row
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.Internal("failed to load team membership", err)
	}

	if member == nil && team.CreatedBy != actor.ID {
		return nil, apperrors.AccessDenied("Access denied")
	}

	if requireOwner {
		if team.CreatedBy != actor.ID && (member == nil || member.Role != models.TeamRoleOwner) {
			return nil, apperrors.AccessDenied("Access denied: owner access required")
		}
	}

	return &team, nil
}

// CheckTaskAccess resolves access to a task. Tasks carry no role of
// their own; access is inherited entirely from the parent project at
// VIEWER level.
func (e *Engine) CheckTaskAccess(taskID uint64, actor *models.Person) (*models.Task, error) {
	var task models.Task
	if err := e.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Task not found")
		}
		return nil, apperrors.Internal("failed to load task", err)
	}

	if _, err := e.CheckProjectAccess(task.ProjectID, actor, models.ProjectRoleViewer); err != nil {
		return nil, err
	}
	return &task, nil
}

// CheckCommentAccess resolves read/attach access to a comment via its
// parent task.
func (e *Engine) CheckCommentAccess(commentID uint64, actor *models.Person) (*models.Comment, error) {
	var comment models.Comment
	if err := e.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Comment not found")
		}
		return nil, apperrors.Internal("failed to load comment", err)
	}

	if _, err := e.CheckTaskAccess(comment.TaskID, actor); err != nil {
		return nil, err
	}
	return &comment, nil
}

// CheckCommentOwner gates comment mutation: the actor must hold task
// access AND be the original author. Project admins do not override
// authorship. System comments are locked entirely.
func (e *Engine) CheckCommentOwner(commentID uint64, actor *models.Person) (*models.Comment, error) {
	comment, err := e.CheckCommentAccess(commentID, actor)
	if err != nil {
		return nil, err
	}
	if comment.IsSystemComment {
		return nil, apperrors.Validation("System comments cannot be modified")
	}
	if comment.PersonID != actor.ID {
		return nil, apperrors.AccessDenied("Not comment owner")
	}
	return comment, nil
}
