package services

import (
	"time"

	"github.com/AranyaAryaman/noJIRA/internal/access"
	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/logger"
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"github.com/AranyaAryaman/noJIRA/internal/repository"
	"github.com/AranyaAryaman/noJIRA/internal/storage"
)

// CommentService handles the task discussion thread. System comments
// are produced by the task service's audit trail and are read-only
// here: they can never be edited or deleted.
type CommentService struct {
	commentRepo repository.CommentRepository
	access      *access.Engine
	store       storage.Store
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, engine *access.Engine, store storage.Store) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		access:      engine,
		store:       store,
	}
}

// CreateComment appends a comment to a task's thread.
func (s *CommentService) CreateComment(taskID uint64, actor *models.Person, text string) (*models.Comment, error) {
	if _, err := s.access.CheckTaskAccess(taskID, actor); err != nil {
		return nil, err
	}

	if text == "" {
		return nil, apperrors.Validation("Comment text is required")
	}

	comment := &models.Comment{
		TaskID:   taskID,
		PersonID: actor.ID,
		Text:     text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, apperrors.Internal("Failed to create comment", err)
	}

	created, err := s.commentRepo.FindByID(comment.ID, "Person", "Attachments")
	if err != nil {
		return nil, apperrors.Internal("Failed to reload comment", err)
	}
	return created, nil
}

// ListComments returns a task's thread oldest first, system comments
// interleaved at their true position.
func (s *CommentService) ListComments(taskID uint64, actor *models.Person) ([]models.Comment, error) {
	if _, err := s.access.CheckTaskAccess(taskID, actor); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list comments", err)
	}
	return comments, nil
}

// UpdateComment edits a comment's text. Author only; system comments
// are locked.
func (s *CommentService) UpdateComment(commentID uint64, actor *models.Person, text string) (*models.Comment, error) {
	comment, err := s.access.CheckCommentOwner(commentID, actor)
	if err != nil {
		return nil, err
	}

	if text == "" {
		return nil, apperrors.Validation("Comment text is required")
	}

	now := time.Now()
	comment.Text = text
	comment.EditedAt = &now

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, apperrors.Internal("Failed to update comment", err)
	}

	updated, err := s.commentRepo.FindByID(comment.ID, "Person", "Attachments")
	if err != nil {
		return nil, apperrors.Internal("Failed to reload comment", err)
	}
	return updated, nil
}

// DeleteComment deletes a comment with its attachments. Author only;
// system comments are locked. Blob removal happens after the database
// commit and is best-effort.
func (s *CommentService) DeleteComment(commentID uint64, actor *models.Person) error {
	comment, err := s.access.CheckCommentOwner(commentID, actor)
	if err != nil {
		return err
	}

	attached, err := s.commentRepo.FindByID(comment.ID, "Attachments")
	if err != nil {
		return apperrors.Internal("Failed to load comment attachments", err)
	}

	if err := s.commentRepo.DeleteCascade(comment.ID); err != nil {
		return apperrors.Internal("Failed to delete comment", err)
	}

	for _, a := range attached.Attachments {
		if err := s.store.Delete(a.FilePath); err != nil {
			logger.Warnf("failed to delete blob %s for comment %d: %v", a.FilePath, comment.ID, err)
		}
	}
	return nil
}
