package repository

import (
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"github.com/AranyaAryaman/noJIRA/internal/utils"
)

// PersonRepository defines the interface for person data access
type PersonRepository interface {
	// Create creates a new person
	Create(person *models.Person) error

	// FindByID finds a person by ID
	FindByID(id uint64) (*models.Person, error)

	// FindByEmail finds a person by email
	FindByEmail(email string) (*models.Person, error)

	// Search lists people matching a name/email substring, capped at limit
	Search(query string, limit int) ([]models.Person, error)
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// CreateWithOwner creates a team and the creator's OWNER membership
	// within a single transaction
	CreateWithOwner(team *models.Team, member *models.TeamMember) error

	// FindByID finds a team by ID
	FindByID(id uint64) (*models.Team, error)

	// ListForPerson lists teams the person created or belongs to
	ListForPerson(personID uint64) ([]models.Team, error)

	// Update updates a team
	Update(team *models.Team) error

	// DeleteCascade deletes a team along with its memberships and
	// project links
	DeleteCascade(id uint64) error

	// AddMember adds a team member
	AddMember(member *models.TeamMember) error

	// FindMember finds a specific team member
	FindMember(teamID, personID uint64) (*models.TeamMember, error)

	// UpdateMemberRole changes a member's role
	UpdateMemberRole(teamID, personID uint64, role models.TeamRole) error

	// RemoveMember removes a team member
	RemoveMember(teamID, personID uint64) error

	// ListMembers lists team members with their person records
	ListMembers(teamID uint64) ([]models.TeamMember, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithAdmin creates a project and the creator's ADMIN
	// membership within a single transaction
	CreateWithAdmin(project *models.Project, member *models.ProjectMember) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindByIDWithDetails loads the project with members and linked teams
	FindByIDWithDetails(id uint64) (*models.Project, error)

	// ListForPerson lists projects reachable via direct membership or a
	// linked team
	ListForPerson(personID uint64, includeArchived bool) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// DeleteCascade deletes a project with its memberships, team links,
	// and every task subtree
	DeleteCascade(id uint64) error

	// AddMember adds a project member
	AddMember(member *models.ProjectMember) error

	// FindMember finds a specific project member
	FindMember(projectID, personID uint64) (*models.ProjectMember, error)

	// UpdateMemberRole changes a member's role
	UpdateMemberRole(projectID, personID uint64, role models.ProjectRole) error

	// RemoveMember removes a project member
	RemoveMember(projectID, personID uint64) error

	// LinkTeam grants a team blanket access to the project
	LinkTeam(link *models.ProjectTeam) error

	// FindTeamLink finds a project-team link
	FindTeamLink(projectID, teamID uint64) (*models.ProjectTeam, error)

	// UnlinkTeam removes a project-team link
	UnlinkTeam(projectID, teamID uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID       uint64
	Status          *models.TaskStatus
	AssigneeID      *uint64
	Severity        *int
	IncludeArchived bool
	// ParentTaskID filters by parent when ParentSet is true; a nil
	// ParentTaskID then selects root tasks only.
	ParentSet    bool
	ParentTaskID *uint64
	// Pagination limits the result set when enabled; the zero value
	// returns every matching task.
	Pagination utils.PaginationParams
}

// TaskAudit carries the audit-trail rows that must commit atomically
// with a task mutation.
type TaskAudit struct {
	History        *models.TaskStatusHistory
	SystemComments []*models.Comment
	// ReplaceTags, when non-nil, replaces the task's tag set wholesale.
	ReplaceTags *[]string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithHistory creates a task, its tags, and the initial
	// status-history row within a single transaction
	CreateWithHistory(task *models.Task, tags []string, history *models.TaskStatusHistory) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks ordered by priority desc, creation desc
	List(filter TaskFilter) ([]models.Task, int64, error)

	// UpdateWithAudit saves the task and its audit rows within a single
	// transaction
	UpdateWithAudit(task *models.Task, audit TaskAudit) error

	// DeleteCascade deletes a task and everything it owns; child tasks
	// are orphaned to root, never deleted
	DeleteCascade(id uint64) error

	// CountSubtasks counts direct children of a task
	CountSubtasks(taskID uint64) (int64, error)

	// AddWatcher adds a watcher row
	AddWatcher(watcher *models.TaskWatcher) error

	// FindWatcher finds a watcher row
	FindWatcher(taskID, personID uint64) (*models.TaskWatcher, error)

	// RemoveWatcher removes a watcher row
	RemoveWatcher(taskID, personID uint64) error

	// ListWatchers lists watchers with their person records
	ListWatchers(taskID uint64) ([]models.TaskWatcher, error)

	// ListHistory lists a task's status history, oldest first
	ListHistory(taskID uint64) ([]models.TaskStatusHistory, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Comment, error)

	// ListByTask lists a task's comments, oldest first
	ListByTask(taskID uint64) ([]models.Comment, error)

	// Update updates a comment
	Update(comment *models.Comment) error

	// DeleteCascade deletes a comment and its attachment rows
	DeleteCascade(id uint64) error
}

// AttachmentRepository defines the interface for attachment metadata.
// Find and Delete are scoped to the parent, so an id from another
// task's URL never resolves.
type AttachmentRepository interface {
	CreateForTask(attachment *models.TaskAttachment) error
	FindForTask(taskID, id uint64) (*models.TaskAttachment, error)
	ListForTask(taskID uint64) ([]models.TaskAttachment, error)
	DeleteForTask(taskID, id uint64) error

	CreateForComment(attachment *models.CommentAttachment) error
	FindForComment(commentID, id uint64) (*models.CommentAttachment, error)
	ListForComment(commentID uint64) ([]models.CommentAttachment, error)
	DeleteForComment(commentID, id uint64) error
}
