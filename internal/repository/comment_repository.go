package repository

import (
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a comment
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// FindByID finds a comment by ID with optional preloading
func (r *GormCommentRepository) FindByID(id uint64, preload ...string) (*models.Comment, error) {
	var comment models.Comment
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByTask lists a task's comments oldest first, with authors and
// attachments. System comments appear inline in creation order.
func (r *GormCommentRepository) ListByTask(taskID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.
		Preload("Person").
		Preload("Attachments").
		Where("task_id = ?", taskID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Update updates a comment
func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// DeleteCascade deletes a comment and its attachment rows
func (r *GormCommentRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.CommentAttachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
}
