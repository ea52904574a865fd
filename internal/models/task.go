package models

import "time"

type TaskStatus string

const (
	TaskStatusNotStarted  TaskStatus = "NOT_STARTED"
	TaskStatusPlanning    TaskStatus = "PLANNING"
	TaskStatusDevelopment TaskStatus = "DEVELOPMENT"
	TaskStatusTesting     TaskStatus = "TESTING"
	TaskStatusFinished    TaskStatus = "FINISHED"
)

// Valid reports whether the status is one of the known pipeline stages.
// Any transition between valid stages is legal.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusPlanning, TaskStatusDevelopment,
		TaskStatusTesting, TaskStatusFinished:
		return true
	}
	return false
}

const (
	SeverityMin = 1
	SeverityMax = 5
	PriorityMin = 1
	PriorityMax = 5
)

type Task struct {
	ID           uint64     `gorm:"primarykey" json:"task_id"`
	ProjectID    uint64     `gorm:"not null;index" json:"project_id"`
	ParentTaskID *uint64    `gorm:"index" json:"parent_task_id"`
	Name         string     `gorm:"type:varchar(500);not null" json:"name"`
	Description  *string    `gorm:"type:text" json:"description"`
	AssigneeID   *uint64    `gorm:"index" json:"assignee_id"`
	Status       TaskStatus `gorm:"type:varchar(20);not null;default:'NOT_STARTED'" json:"status"`
	Severity     int        `gorm:"not null;default:3" json:"severity"`
	Priority     int        `gorm:"not null;default:3" json:"priority"`
	DueDate      *time.Time `json:"due_date"`
	CreatedBy    uint64     `gorm:"not null" json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	IsArchived   bool       `gorm:"not null;default:false" json:"is_archived"`

	// Relations
	Project       Project             `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	ParentTask    *Task               `gorm:"foreignKey:ParentTaskID" json:"parent_task,omitempty"`
	Subtasks      []Task              `gorm:"foreignKey:ParentTaskID" json:"subtasks,omitempty"`
	Assignee      *Person             `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Creator       Person              `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Tags          []TaskTag           `gorm:"foreignKey:TaskID" json:"tags,omitempty"`
	Watchers      []TaskWatcher       `gorm:"foreignKey:TaskID" json:"watchers,omitempty"`
	Attachments   []TaskAttachment    `gorm:"foreignKey:TaskID" json:"attachments,omitempty"`
	Comments      []Comment           `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
	StatusHistory []TaskStatusHistory `gorm:"foreignKey:TaskID" json:"status_history,omitempty"`
}

type TaskTag struct {
	TaskID uint64 `gorm:"primarykey" json:"task_id"`
	Tag    string `gorm:"primarykey;type:varchar(100)" json:"tag"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}

type TaskWatcher struct {
	TaskID   uint64 `gorm:"primarykey" json:"task_id"`
	PersonID uint64 `gorm:"primarykey" json:"person_id"`

	// Relations
	Task   Task   `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Person Person `gorm:"foreignKey:PersonID" json:"person,omitempty"`
}

type TaskAttachment struct {
	ID         uint64    `gorm:"primarykey" json:"attachment_id"`
	TaskID     uint64    `gorm:"not null;index" json:"task_id"`
	FileName   string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FileType   string    `gorm:"type:varchar(100);not null" json:"file_type"`
	FilePath   string    `gorm:"type:varchar(500);not null" json:"-"`
	UploadedBy uint64    `gorm:"not null" json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`

	// Relations
	Task     Task   `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Uploader Person `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}

// TaskStatusHistory is an append-only record of status transitions.
// Rows are never updated; they are removed only when their task is
// cascade-deleted.
type TaskStatusHistory struct {
	ID        uint64      `gorm:"primarykey" json:"id"`
	TaskID    uint64      `gorm:"not null;index" json:"task_id"`
	OldStatus *TaskStatus `gorm:"type:varchar(20)" json:"old_status"`
	NewStatus TaskStatus  `gorm:"type:varchar(20);not null" json:"new_status"`
	ChangedBy uint64      `gorm:"not null" json:"changed_by"`
	ChangedAt time.Time   `json:"changed_at"`

	// Relations
	Task    Task   `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Changer Person `gorm:"foreignKey:ChangedBy" json:"changer,omitempty"`
}
