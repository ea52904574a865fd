package dto

import (
	"time"

	"github.com/AranyaAryaman/noJIRA/internal/models"
	"github.com/AranyaAryaman/noJIRA/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"task_id"`
	ProjectID    uint64              `json:"project_id"`
	ParentTaskID *uint64             `json:"parent_task_id"`
	Name         string              `json:"name"`
	Description  *string             `json:"description"`
	Status       models.TaskStatus   `json:"status"`
	Severity     int                 `json:"severity"`
	Priority     int                 `json:"priority"`
	DueDate      *time.Time          `json:"due_date"`
	CreatedBy    uint64              `json:"created_by"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	IsArchived   bool                `json:"is_archived"`
	Creator      *PersonBriefDTO     `json:"creator,omitempty"`
	Assignee     *PersonBriefDTO     `json:"assignee"`
	Tags         []string            `json:"tags"`
	Attachments  []TaskAttachmentDTO `json:"attachments,omitempty"`
}

// TaskDetailDTO adds the subtask count to the task shape
type TaskDetailDTO struct {
	TaskDTO
	SubtaskCount int64 `json:"subtask_count"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks []TaskDTO `json:"tasks"`
	utils.PaginationResponse
}

// TaskAttachmentDTO represents a task attachment in API responses
type TaskAttachmentDTO struct {
	ID         uint64    `json:"attachment_id"`
	TaskID     uint64    `json:"task_id"`
	FileName   string    `json:"file_name"`
	FileType   string    `json:"file_type"`
	UploadedBy uint64    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// TaskWatcherDTO represents a watcher subscription
type TaskWatcherDTO struct {
	Person PersonBriefDTO `json:"person"`
}

// TaskStatusHistoryDTO represents one status-history entry
type TaskStatusHistoryDTO struct {
	ID        uint64             `json:"history_id"`
	TaskID    uint64             `json:"task_id"`
	OldStatus *models.TaskStatus `json:"old_status"`
	NewStatus models.TaskStatus  `json:"new_status"`
	ChangedBy uint64             `json:"changed_by"`
	ChangedAt time.Time          `json:"changed_at"`
}

// ToTaskDTO converts a task with its preloaded relations to DTO
func ToTaskDTO(task models.Task) TaskDTO {
	tags := make([]string, len(task.Tags))
	for i, t := range task.Tags {
		tags[i] = t.Tag
	}

	attachments := make([]TaskAttachmentDTO, len(task.Attachments))
	for i, a := range task.Attachments {
		attachments[i] = ToTaskAttachmentDTO(a)
	}

	return TaskDTO{
		ID:           task.ID,
		ProjectID:    task.ProjectID,
		ParentTaskID: task.ParentTaskID,
		Name:         task.Name,
		Description:  task.Description,
		Status:       task.Status,
		Severity:     task.Severity,
		Priority:     task.Priority,
		DueDate:      task.DueDate,
		CreatedBy:    task.CreatedBy,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
		IsArchived:   task.IsArchived,
		Creator:      ToPersonBriefDTO(&task.Creator),
		Assignee:     ToPersonBriefDTO(task.Assignee),
		Tags:         tags,
		Attachments:  attachments,
	}
}

// ToTaskDTOs converts a slice of tasks to DTOs
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}

// ToTaskDetailDTO converts a task plus its subtask count to the
// detailed form
func ToTaskDetailDTO(task models.Task, subtaskCount int64) TaskDetailDTO {
	return TaskDetailDTO{
		TaskDTO:      ToTaskDTO(task),
		SubtaskCount: subtaskCount,
	}
}

// ToTaskAttachmentDTO converts a task attachment to DTO
func ToTaskAttachmentDTO(a models.TaskAttachment) TaskAttachmentDTO {
	return TaskAttachmentDTO{
		ID:         a.ID,
		TaskID:     a.TaskID,
		FileName:   a.FileName,
		FileType:   a.FileType,
		UploadedBy: a.UploadedBy,
		UploadedAt: a.UploadedAt,
	}
}

// ToTaskAttachmentDTOs converts task attachments to DTOs
func ToTaskAttachmentDTOs(attachments []models.TaskAttachment) []TaskAttachmentDTO {
	dtos := make([]TaskAttachmentDTO, len(attachments))
	for i, a := range attachments {
		dtos[i] = ToTaskAttachmentDTO(a)
	}
	return dtos
}

// ToTaskWatcherDTOs converts watcher rows (with preloaded people) to DTOs
func ToTaskWatcherDTOs(watchers []models.TaskWatcher) []TaskWatcherDTO {
	dtos := make([]TaskWatcherDTO, len(watchers))
	for i, w := range watchers {
		dtos[i] = TaskWatcherDTO{Person: PersonBriefDTO{ID: w.Person.ID, Name: w.Person.Name}}
	}
	return dtos
}

// ToTaskStatusHistoryDTOs converts history rows to DTOs
func ToTaskStatusHistoryDTOs(history []models.TaskStatusHistory) []TaskStatusHistoryDTO {
	dtos := make([]TaskStatusHistoryDTO, len(history))
	for i, h := range history {
		dtos[i] = TaskStatusHistoryDTO{
			ID:        h.ID,
			TaskID:    h.TaskID,
			OldStatus: h.OldStatus,
			NewStatus: h.NewStatus,
			ChangedBy: h.ChangedBy,
			ChangedAt: h.ChangedAt,
		}
	}
	return dtos
}
