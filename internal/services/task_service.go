package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/AranyaAryaman/noJIRA/internal/access"
	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"github.com/AranyaAryaman/noJIRA/internal/repository"
	"github.com/AranyaAryaman/noJIRA/internal/utils"
	"gorm.io/gorm"
)

// TaskService orchestrates task lifecycle operations. Every entry point
// resolves authorization through the access engine before touching
// data, and any mutation of a tracked field routes through the audit
// trail inside the same transaction.
type TaskService struct {
	taskRepo   repository.TaskRepository
	personRepo repository.PersonRepository
	access     *access.Engine
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, personRepo repository.PersonRepository, engine *access.Engine) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		personRepo: personRepo,
		access:     engine,
	}
}

// taskDetailPreloads are the relations materialized on task responses.
var taskDetailPreloads = []string{"Creator", "Assignee", "Tags", "Attachments"}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ProjectID    uint64
	ParentTaskID *uint64
	Name         string
	Description  *string
	AssigneeID   *uint64
	Status       models.TaskStatus
	Severity     int
	Priority     int
	DueDate      *time.Time
	Tags         []string
}

// UpdateTaskInput represents a partial task update. Nil fields are left
// untouched.
type UpdateTaskInput struct {
	Name        *string
	Description *string
	Severity    *int
	Priority    *int
	DueDate     *time.Time
	IsArchived  *bool
	Status      *models.TaskStatus
	// AssigneeID zero means unassign.
	AssigneeID *uint64
	// Reparent moves the task under ReparentTo; a nil ReparentTo makes
	// it a root task.
	Reparent   bool
	ReparentTo *uint64
	Tags       *[]string
}

// ListTasksInput represents filters for listing a project's tasks
type ListTasksInput struct {
	ProjectID       uint64
	Status          *models.TaskStatus
	AssigneeID      *uint64
	Severity        *int
	IncludeArchived bool
	ParentSet       bool
	ParentTaskID    *uint64
	Pagination      utils.PaginationParams
}

// CreateTask creates a task under an accessible project, recording the
// initial status-history row in the same transaction.
func (s *TaskService) CreateTask(actor *models.Person, input CreateTaskInput) (*models.Task, error) {
	if _, err := s.access.CheckProjectAccess(input.ProjectID, actor, models.ProjectRoleViewer); err != nil {
		return nil, err
	}

	if input.Name == "" {
		return nil, apperrors.Validation("Task name is required")
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusNotStarted
	}
	if !status.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("Invalid status %q", input.Status))
	}

	severity := input.Severity
	if severity == 0 {
		severity = 3
	}
	priority := input.Priority
	if priority == 0 {
		priority = 3
	}
	if err := validateScale("severity", severity, models.SeverityMin, models.SeverityMax); err != nil {
		return nil, err
	}
	if err := validateScale("priority", priority, models.PriorityMin, models.PriorityMax); err != nil {
		return nil, err
	}

	if input.ParentTaskID != nil {
		parent, err := s.taskRepo.FindByID(*input.ParentTaskID)
		if err != nil || parent.ProjectID != input.ProjectID {
			return nil, apperrors.Validation("Invalid parent task")
		}
	}

	if input.AssigneeID != nil {
		if _, err := s.personRepo.FindByID(*input.AssigneeID); err != nil {
			return nil, apperrors.Validation("Assignee does not exist")
		}
	}

	task := &models.Task{
		ProjectID:    input.ProjectID,
		ParentTaskID: input.ParentTaskID,
		Name:         input.Name,
		Description:  input.Description,
		AssigneeID:   input.AssigneeID,
		Status:       status,
		Severity:     severity,
		Priority:     priority,
		DueDate:      input.DueDate,
		CreatedBy:    actor.ID,
	}

	history := initialStatusHistory(task, actor)
	if err := s.taskRepo.CreateWithHistory(task, uniqueStrings(input.Tags), history); err != nil {
		return nil, apperrors.Internal("Failed to create task", err)
	}

	created, err := s.taskRepo.FindByID(task.ID, taskDetailPreloads...)
	if err != nil {
		return nil, apperrors.Internal("Failed to reload task", err)
	}
	return created, nil
}

// GetTask returns a task with its direct relations and subtask count.
func (s *TaskService) GetTask(taskID uint64, actor *models.Person) (*models.Task, int64, error) {
	if _, err := s.access.CheckTaskAccess(taskID, actor); err != nil {
		return nil, 0, err
	}

	task, err := s.taskRepo.FindByID(taskID, taskDetailPreloads...)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to load task", err)
	}

	subtasks, err := s.taskRepo.CountSubtasks(taskID)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to count subtasks", err)
	}

	return task, subtasks, nil
}

// ListTasks lists tasks of an accessible project.
func (s *TaskService) ListTasks(actor *models.Person, input ListTasksInput) ([]models.Task, int64, error) {
	if _, err := s.access.CheckProjectAccess(input.ProjectID, actor, models.ProjectRoleViewer); err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		ProjectID:       input.ProjectID,
		Status:          input.Status,
		AssigneeID:      input.AssigneeID,
		Severity:        input.Severity,
		IncludeArchived: input.IncludeArchived,
		ParentSet:       input.ParentSet,
		ParentTaskID:    input.ParentTaskID,
		Pagination:      input.Pagination,
	})
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list tasks", err)
	}
	return tasks, total, nil
}

// UpdateTask applies a partial update. A status change appends a
// history row and a narrating system comment; an assignee change
// appends a narrating system comment; both commit atomically with the
// field changes.
func (s *TaskService) UpdateTask(taskID uint64, actor *models.Person, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.access.CheckTaskAccess(taskID, actor)
	if err != nil {
		return nil, err
	}

	audit := repository.TaskAudit{}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.Validation("Task name cannot be empty")
		}
		task.Name = *input.Name
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Severity != nil {
		if err := validateScale("severity", *input.Severity, models.SeverityMin, models.SeverityMax); err != nil {
			return nil, err
		}
		task.Severity = *input.Severity
	}
	if input.Priority != nil {
		if err := validateScale("priority", *input.Priority, models.PriorityMin, models.PriorityMax); err != nil {
			return nil, err
		}
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.IsArchived != nil {
		task.IsArchived = *input.IsArchived
	}

	if input.Status != nil && *input.Status != task.Status {
		if !input.Status.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("Invalid status %q", *input.Status))
		}
		oldStatus := task.Status
		task.Status = *input.Status
		audit.History = statusHistory(task, oldStatus, task.Status, actor)
		audit.SystemComments = append(audit.SystemComments,
			systemComment(task.ID, actor, StatusChangeText(&oldStatus, task.Status)))
	}

	if input.AssigneeID != nil {
		if err := s.applyAssigneeChange(task, actor, *input.AssigneeID, &audit); err != nil {
			return nil, err
		}
	}

	if input.Reparent {
		if err := s.validateReparent(task, input.ReparentTo); err != nil {
			return nil, err
		}
		task.ParentTaskID = input.ReparentTo
	}

	if input.Tags != nil {
		tags := uniqueStrings(*input.Tags)
		audit.ReplaceTags = &tags
	}

	if err := s.taskRepo.UpdateWithAudit(task, audit); err != nil {
		return nil, apperrors.Internal("Failed to update task", err)
	}

	updated, err := s.taskRepo.FindByID(task.ID, taskDetailPreloads...)
	if err != nil {
		return nil, apperrors.Internal("Failed to reload task", err)
	}
	return updated, nil
}

// applyAssigneeChange resolves the submitted assignee id (zero means
// unassign), mutates the task, and queues the narrating system comment
// when the effective assignee actually changes.
func (s *TaskService) applyAssigneeChange(task *models.Task, actor *models.Person, submitted uint64, audit *repository.TaskAudit) error {
	var newID *uint64
	if submitted != 0 {
		newID = &submitted
	}

	oldID := task.AssigneeID
	if equalIDs(oldID, newID) {
		return nil
	}

	var oldAssignee, newAssignee *models.Person
	var err error

	if oldID != nil {
		oldAssignee, err = s.personRepo.FindByID(*oldID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Internal("Failed to load assignee", err)
		}
	}
	if newID != nil {
		newAssignee, err = s.personRepo.FindByID(*newID)
		if err != nil {
			return apperrors.Validation("Assignee does not exist")
		}
	}

	task.AssigneeID = newID
	audit.SystemComments = append(audit.SystemComments,
		systemComment(task.ID, actor, AssigneeChangeText(oldAssignee, newAssignee)))
	return nil
}

// validateReparent enforces the tree invariants: the new parent must
// exist, live in the same project, and must not be the task itself or
// any of its descendants.
func (s *TaskService) validateReparent(task *models.Task, newParentID *uint64) error {
	if newParentID == nil {
		return nil
	}
	if *newParentID == task.ID {
		return apperrors.Validation("A task cannot be its own parent")
	}

	parent, err := s.taskRepo.FindByID(*newParentID)
	if err != nil || parent.ProjectID != task.ProjectID {
		return apperrors.Validation("Invalid parent task")
	}

	// ancestor walk: if the candidate parent descends from this task,
	// the move would close a cycle
	cursor := parent
	for cursor.ParentTaskID != nil {
		if *cursor.ParentTaskID == task.ID {
			return apperrors.Validation("A task cannot become its own ancestor")
		}
		cursor, err = s.taskRepo.FindByID(*cursor.ParentTaskID)
		if err != nil {
			return apperrors.Internal("Failed to walk task ancestry", err)
		}
	}
	return nil
}

// DeleteTask deletes a task and everything it owns. Child tasks are
// orphaned to root, never deleted.
func (s *TaskService) DeleteTask(taskID uint64, actor *models.Person) error {
	if _, err := s.access.CheckTaskAccess(taskID, actor); err != nil {
		return err
	}

	if err := s.taskRepo.DeleteCascade(taskID); err != nil {
		return apperrors.Internal("Failed to delete task", err)
	}
	return nil
}

// AddWatcher subscribes a person to a task.
func (s *TaskService) AddWatcher(taskID uint64, actor *models.Person, personID uint64) error {
	if _, err := s.access.CheckTaskAccess(taskID, actor); err != nil {
		return err
	}

	if _, err := s.personRepo.FindByID(personID); err != nil {
		return apperrors.Validation("Person does not exist")
	}

	if _, err := s.taskRepo.FindWatcher(taskID, personID); err == nil {
		return apperrors.Conflict("Already watching this task")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Internal("Failed to check watcher", err)
	}

	watcher := &models.TaskWatcher{TaskID: taskID, PersonID: personID}
	if err := s.taskRepo.AddWatcher(watcher); err != nil {
		return apperrors.Internal("Failed to add watcher", err)
	}
	return nil
}

// RemoveWatcher unsubscribes a person from a task.
func (s *TaskService) RemoveWatcher(taskID uint64, actor *models.Person, personID uint64) error {
	if _, err := s.access.CheckTaskAccess(taskID, actor); err != nil {
		return err
	}

	if _, err := s.taskRepo.FindWatcher(taskID, personID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Watcher not found")
		}
		return apperrors.Internal("Failed to check watcher", err)
	}

	if err := s.taskRepo.RemoveWatcher(taskID, personID); err != nil {
		return apperrors.Internal("Failed to remove watcher", err)
	}
	return nil
}

// ListWatchers lists a task's watchers.
func (s *TaskService) ListWatchers(taskID uint64, actor *models.Person) ([]models.TaskWatcher, error) {
	if _, err := s.access.CheckTaskAccess(taskID, actor); err != nil {
		return nil, err
	}

	watchers, err := s.taskRepo.ListWatchers(taskID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list watchers", err)
	}
	return watchers, nil
}

// ListHistory lists a task's status history, oldest first.
func (s *TaskService) ListHistory(taskID uint64, actor *models.Person) ([]models.TaskStatusHistory, error) {
	if _, err := s.access.CheckTaskAccess(taskID, actor); err != nil {
		return nil, err
	}

	history, err := s.taskRepo.ListHistory(taskID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list status history", err)
	}
	return history, nil
}

func validateScale(field string, value, min, max int) error {
	if value < min || value > max {
		return apperrors.Validation(fmt.Sprintf("%s must be between %d and %d", field, min, max))
	}
	return nil
}

func equalIDs(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// uniqueStrings removes duplicate values while preserving order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
