package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/dto"
	"github.com/AranyaAryaman/noJIRA/internal/middleware"
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"github.com/AranyaAryaman/noJIRA/internal/services"
	"github.com/AranyaAryaman/noJIRA/internal/utils"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask creates a task in a project
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor := middleware.GetActor(c)
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req struct {
		Name         string            `json:"name" binding:"required"`
		Description  *string           `json:"description"`
		ParentTaskID *uint64           `json:"parent_task_id"`
		AssigneeID   *uint64           `json:"assignee_id"`
		Status       models.TaskStatus `json:"status"`
		Severity     int               `json:"severity"`
		Priority     int               `json:"priority"`
		DueDate      *time.Time        `json:"due_date"`
		Tags         []string          `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(actor, services.CreateTaskInput{
		ProjectID:    projectID,
		ParentTaskID: req.ParentTaskID,
		Name:         req.Name,
		Description:  req.Description,
		AssigneeID:   req.AssigneeID,
		Status:       req.Status,
		Severity:     req.Severity,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		Tags:         req.Tags,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks lists a project's tasks with optional filters.
// parent_task_id accepts a task id or the literal "null" for root tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor := middleware.GetActor(c)
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	input := services.ListTasksInput{
		ProjectID:       projectID,
		IncludeArchived: c.Query("include_archived") == "true",
	}

	if v := c.Query("status"); v != "" {
		status := models.TaskStatus(v)
		if !status.Valid() {
			apperrors.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}
	if v := c.Query("assignee_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apperrors.BadRequest(c, "Invalid assignee_id")
			return
		}
		input.AssigneeID = &id
	}
	if v := c.Query("severity"); v != "" {
		sev, err := strconv.Atoi(v)
		if err != nil {
			apperrors.BadRequest(c, "Invalid severity")
			return
		}
		input.Severity = &sev
	}
	if v := c.Query("parent_task_id"); v != "" {
		input.ParentSet = true
		if v != "null" {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				apperrors.BadRequest(c, "Invalid parent_task_id")
				return
			}
			input.ParentTaskID = &id
		}
	}

	// without page/page_size the full set is returned and the paging
	// fields in the envelope stay zero
	params := utils.GetPaginationParams(c)
	input.Pagination = params

	tasks, total, err := h.taskService.ListTasks(actor, input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks: dto.ToTaskDTOs(tasks),
		PaginationResponse: utils.PaginationResponse{
			Page:     params.Page,
			PageSize: params.PageSize,
			Total:    total,
		},
	})
}

// GetTask returns a task with its relations and subtask count
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor := middleware.GetActor(c)
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	task, subtasks, err := h.taskService.GetTask(taskID, actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDetailDTO(*task, subtasks))
}

// UpdateTask applies a partial update. assignee_id 0 unassigns;
// parent_task_id null moves the task to the root.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor := middleware.GetActor(c)
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	var req struct {
		Name         *string            `json:"name"`
		Description  *string            `json:"description"`
		Status       *models.TaskStatus `json:"status"`
		Severity     *int               `json:"severity"`
		Priority     *int               `json:"priority"`
		DueDate      *time.Time         `json:"due_date"`
		IsArchived   *bool              `json:"is_archived"`
		AssigneeID   *uint64            `json:"assignee_id"`
		ParentTaskID json.RawMessage    `json:"parent_task_id"`
		Tags         *[]string          `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Severity:    req.Severity,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		IsArchived:  req.IsArchived,
		AssigneeID:  req.AssigneeID,
		Tags:        req.Tags,
	}

	// raw message distinguishes an absent parent_task_id from an
	// explicit null
	if len(req.ParentTaskID) > 0 {
		input.Reparent = true
		if string(req.ParentTaskID) != "null" {
			var parentID uint64
			if err := json.Unmarshal(req.ParentTaskID, &parentID); err != nil {
				apperrors.BadRequest(c, "Invalid parent_task_id")
				return
			}
			input.ReparentTo = &parentID
		}
	}

	task, err := h.taskService.UpdateTask(taskID, actor, input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task; its children become root tasks
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor := middleware.GetActor(c)
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, actor); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// AddWatcher subscribes a person to the task. When person_id is
// omitted the caller subscribes themselves.
func (h *TaskHandler) AddWatcher(c *gin.Context) {
	actor := middleware.GetActor(c)
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	var req struct {
		PersonID uint64 `json:"person_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	personID := req.PersonID
	if personID == 0 {
		personID = middleware.GetPersonID(c)
	}

	if err := h.taskService.AddWatcher(taskID, actor, personID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task_id": taskID, "person_id": personID})
}

// RemoveWatcher unsubscribes a person from the task
func (h *TaskHandler) RemoveWatcher(c *gin.Context) {
	actor := middleware.GetActor(c)
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}
	personID, ok := pathID(c, "person_id")
	if !ok {
		return
	}

	if err := h.taskService.RemoveWatcher(taskID, actor, personID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Watcher removed"})
}

// ListWatchers lists the task's watchers
func (h *TaskHandler) ListWatchers(c *gin.Context) {
	actor := middleware.GetActor(c)
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	watchers, err := h.taskService.ListWatchers(taskID, actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"watchers": dto.ToTaskWatcherDTOs(watchers)})
}

// ListHistory lists the task's status history, oldest first
func (h *TaskHandler) ListHistory(c *gin.Context) {
	actor := middleware.GetActor(c)
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	history, err := h.taskService.ListHistory(taskID, actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": dto.ToTaskStatusHistoryDTOs(history)})
}
