package services

import (
	"fmt"
	"time"

	"github.com/AranyaAryaman/noJIRA/internal/models"
)

// The audit trail narrates tracked-field changes as system comments and
// appends status transitions to the history log. All rows built here
// are committed inside the same transaction as the task mutation that
// caused them.

// historyOldNone is the narrative token for an absent previous status.
const historyOldNone = "None"

// unassignedName is the narrative token for an absent assignee.
const unassignedName = "Unassigned"

// initialStatusHistory builds the history row recorded on task
// creation: old status absent, new status the task's initial one.
func initialStatusHistory(task *models.Task, actor *models.Person) *models.TaskStatusHistory {
	return &models.TaskStatusHistory{
		TaskID:    task.ID,
		OldStatus: nil,
		NewStatus: task.Status,
		ChangedBy: actor.ID,
		ChangedAt: time.Now().UTC(),
	}
}

// statusHistory builds the history row for a status transition.
func statusHistory(task *models.Task, oldStatus, newStatus models.TaskStatus, actor *models.Person) *models.TaskStatusHistory {
	old := oldStatus
	return &models.TaskStatusHistory{
		TaskID:    task.ID,
		OldStatus: &old,
		NewStatus: newStatus,
		ChangedBy: actor.ID,
		ChangedAt: time.Now().UTC(),
	}
}

// StatusChangeText renders the system-comment narration for a status
// transition, using canonical enum names and "None" for an absent old
// status.
func StatusChangeText(oldStatus *models.TaskStatus, newStatus models.TaskStatus) string {
	oldName := historyOldNone
	if oldStatus != nil {
		oldName = string(*oldStatus)
	}
	return fmt.Sprintf("Status changed from %s to %s", oldName, newStatus)
}

// AssigneeChangeText renders the system-comment narration for an
// assignee change, using display names and "Unassigned" for either
// vacant end.
func AssigneeChangeText(oldAssignee, newAssignee *models.Person) string {
	oldName := unassignedName
	if oldAssignee != nil {
		oldName = oldAssignee.Name
	}
	newName := unassignedName
	if newAssignee != nil {
		newName = newAssignee.Name
	}
	return fmt.Sprintf("Assignee changed from %s to %s", oldName, newName)
}

// systemComment builds an audit-trail comment. It is attributed to the
// acting person, not a synthetic identity, and flagged so the comment
// layer refuses to ever edit or delete it.
func systemComment(taskID uint64, actor *models.Person, text string) *models.Comment {
	return &models.Comment{
		TaskID:          taskID,
		PersonID:        actor.ID,
		Text:            text,
		IsSystemComment: true,
	}
}
