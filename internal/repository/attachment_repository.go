package repository

import (
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"gorm.io/gorm"
)

// GormAttachmentRepository implements AttachmentRepository using GORM
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new GORM-based attachment repository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// CreateForTask records a task attachment
func (r *GormAttachmentRepository) CreateForTask(attachment *models.TaskAttachment) error {
	return r.db.Create(attachment).Error
}

// FindForTask finds an attachment scoped to its task
func (r *GormAttachmentRepository) FindForTask(taskID, id uint64) (*models.TaskAttachment, error) {
	var attachment models.TaskAttachment
	if err := r.db.Where("task_id = ?", taskID).First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// ListForTask lists a task's attachments, oldest first
func (r *GormAttachmentRepository) ListForTask(taskID uint64) ([]models.TaskAttachment, error) {
	var attachments []models.TaskAttachment
	if err := r.db.Where("task_id = ?", taskID).
		Order("uploaded_at ASC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// DeleteForTask removes a task attachment record
func (r *GormAttachmentRepository) DeleteForTask(taskID, id uint64) error {
	return r.db.Where("task_id = ?", taskID).
		Delete(&models.TaskAttachment{}, id).Error
}

// CreateForComment records a comment attachment
func (r *GormAttachmentRepository) CreateForComment(attachment *models.CommentAttachment) error {
	return r.db.Create(attachment).Error
}

// FindForComment finds an attachment scoped to its comment
func (r *GormAttachmentRepository) FindForComment(commentID, id uint64) (*models.CommentAttachment, error) {
	var attachment models.CommentAttachment
	if err := r.db.Where("comment_id = ?", commentID).First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// ListForComment lists a comment's attachments, oldest first
func (r *GormAttachmentRepository) ListForComment(commentID uint64) ([]models.CommentAttachment, error) {
	var attachments []models.CommentAttachment
	if err := r.db.Where("comment_id = ?", commentID).
		Order("uploaded_at ASC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// DeleteForComment removes a comment attachment record
func (r *GormAttachmentRepository) DeleteForComment(commentID, id uint64) error {
	return r.db.Where("comment_id = ?", commentID).
		Delete(&models.CommentAttachment{}, id).Error
}
