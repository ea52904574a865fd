package repository

import (
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateWithHistory creates the task, its tags, and the initial status
// history row (old status absent) atomically.
func (r *GormTaskRepository) CreateWithHistory(task *models.Task, tags []string, history *models.TaskStatusHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		for _, tag := range tags {
			row := models.TaskTag{TaskID: task.ID, Tag: tag}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		history.TaskID = task.ID
		return tx.Create(history).Error
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks for a project ordered by priority desc then
// creation time desc.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("project_id = ?", filter.ProjectID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Severity != nil {
		query = query.Where("severity = ?", *filter.Severity)
	}
	if !filter.IncludeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if filter.ParentSet {
		if filter.ParentTaskID == nil {
			query = query.Where("parent_task_id IS NULL")
		} else {
			query = query.Where("parent_task_id = ?", *filter.ParentTaskID)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("priority DESC, created_at DESC")
	if filter.Pagination.Enabled() {
		listQuery = listQuery.Offset(filter.Pagination.Offset()).Limit(filter.Pagination.PageSize)
	}

	var tasks []models.Task
	if err := listQuery.
		Preload("Creator").
		Preload("Assignee").
		Preload("Tags").
		Preload("Attachments").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// UpdateWithAudit saves the task together with its audit rows. A status
// history row, system comments, and a tag replacement all commit with
// the field changes or not at all.
func (r *GormTaskRepository) UpdateWithAudit(task *models.Task, audit TaskAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}

		if audit.History != nil {
			audit.History.TaskID = task.ID
			if err := tx.Create(audit.History).Error; err != nil {
				return err
			}
		}

		for _, comment := range audit.SystemComments {
			comment.TaskID = task.ID
			if err := tx.Create(comment).Error; err != nil {
				return err
			}
		}

		if audit.ReplaceTags != nil {
			if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskTag{}).Error; err != nil {
				return err
			}
			for _, tag := range *audit.ReplaceTags {
				row := models.TaskTag{TaskID: task.ID, Tag: tag}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// DeleteCascade deletes the task and everything it owns. Child tasks
// survive with their parent reference cleared.
func (r *GormTaskRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// orphan children to root rather than cascading
		if err := tx.Model(&models.Task{}).
			Where("parent_task_id = ?", id).
			Update("parent_task_id", nil).Error; err != nil {
			return err
		}

		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("task_id = ?", id)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskWatcher{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskStatusHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}

// CountSubtasks counts direct children of a task
func (r *GormTaskRepository) CountSubtasks(taskID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("parent_task_id = ?", taskID).
		Count(&count).Error
	return count, err
}

// AddWatcher adds a watcher row
func (r *GormTaskRepository) AddWatcher(watcher *models.TaskWatcher) error {
	return r.db.Create(watcher).Error
}

// FindWatcher finds a watcher row
func (r *GormTaskRepository) FindWatcher(taskID, personID uint64) (*models.TaskWatcher, error) {
	var watcher models.TaskWatcher
	if err := r.db.Where("task_id = ? AND person_id = ?", taskID, personID).
		First(&watcher).Error; err != nil {
		return nil, err
	}
	return &watcher, nil
}

// RemoveWatcher removes a watcher row
func (r *GormTaskRepository) RemoveWatcher(taskID, personID uint64) error {
	return r.db.Where("task_id = ? AND person_id = ?", taskID, personID).
		Delete(&models.TaskWatcher{}).Error
}

// ListWatchers lists watchers with their person records
func (r *GormTaskRepository) ListWatchers(taskID uint64) ([]models.TaskWatcher, error) {
	var watchers []models.TaskWatcher
	if err := r.db.Preload("Person").
		Where("task_id = ?", taskID).
		Find(&watchers).Error; err != nil {
		return nil, err
	}
	return watchers, nil
}

// ListHistory lists a task's status history, oldest first
func (r *GormTaskRepository) ListHistory(taskID uint64) ([]models.TaskStatusHistory, error) {
	var history []models.TaskStatusHistory
	if err := r.db.Where("task_id = ?", taskID).
		Order("changed_at ASC, id ASC").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}
