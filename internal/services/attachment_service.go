package services

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/AranyaAryaman/noJIRA/internal/access"
	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/logger"
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"github.com/AranyaAryaman/noJIRA/internal/repository"
	"github.com/AranyaAryaman/noJIRA/internal/storage"
)

// AttachmentService handles file uploads for tasks and comments. The
// blob lives in the Store; the database row only carries metadata and
// the storage path.
type AttachmentService struct {
	attachmentRepo repository.AttachmentRepository
	access         *access.Engine
	store          storage.Store
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(attachmentRepo repository.AttachmentRepository, engine *access.Engine, store storage.Store) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		access:         engine,
		store:          store,
	}
}

// detectFileType derives a content type from the file name, falling
// back to a generic binary type.
func detectFileType(fileName string) string {
	if t := mime.TypeByExtension(filepath.Ext(fileName)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// UploadTaskAttachment stores a blob and records it against a task.
func (s *AttachmentService) UploadTaskAttachment(taskID uint64, actor *models.Person, fileName string, r io.Reader) (*models.TaskAttachment, error) {
	if _, err := s.access.CheckTaskAccess(taskID, actor); err != nil {
		return nil, err
	}

	if fileName == "" {
		return nil, apperrors.Validation("File name is required")
	}

	path, err := s.store.Put(fmt.Sprintf("tasks/%d", taskID), fileName, r)
	if err != nil {
		return nil, apperrors.Internal("Failed to store file", err)
	}

	attachment := &models.TaskAttachment{
		TaskID:     taskID,
		FileName:   fileName,
		FileType:   detectFileType(fileName),
		FilePath:   path,
		UploadedBy: actor.ID,
	}
	if err := s.attachmentRepo.CreateForTask(attachment); err != nil {
		if derr := s.store.Delete(path); derr != nil {
			logger.Warnf("failed to clean up blob %s: %v", path, derr)
		}
		return nil, apperrors.Internal("Failed to record attachment", err)
	}
	return attachment, nil
}

// ListTaskAttachments lists a task's attachments, oldest first.
func (s *AttachmentService) ListTaskAttachments(taskID uint64, actor *models.Person) ([]models.TaskAttachment, error) {
	if _, err := s.access.CheckTaskAccess(taskID, actor); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.ListForTask(taskID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list attachments", err)
	}
	return attachments, nil
}

// DownloadTaskAttachment opens an attachment's blob for streaming. The
// caller owns the returned reader.
func (s *AttachmentService) DownloadTaskAttachment(taskID, attachmentID uint64, actor *models.Person) (*models.TaskAttachment, io.ReadCloser, error) {
	if _, err := s.access.CheckTaskAccess(taskID, actor); err != nil {
		return nil, nil, err
	}

	attachment, err := s.attachmentRepo.FindForTask(taskID, attachmentID)
	if err != nil {
		return nil, nil, apperrors.NotFound("Attachment not found")
	}

	blob, err := s.store.Get(attachment.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, apperrors.NotFound("Attachment file is missing")
		}
		return nil, nil, apperrors.Internal("Failed to open file", err)
	}
	return attachment, blob, nil
}

// DeleteTaskAttachment removes the record and best-effort deletes the
// blob. An already-absent blob is not an error.
func (s *AttachmentService) DeleteTaskAttachment(taskID, attachmentID uint64, actor *models.Person) error {
	if _, err := s.access.CheckTaskAccess(taskID, actor); err != nil {
		return err
	}

	attachment, err := s.attachmentRepo.FindForTask(taskID, attachmentID)
	if err != nil {
		return apperrors.NotFound("Attachment not found")
	}

	if err := s.attachmentRepo.DeleteForTask(taskID, attachmentID); err != nil {
		return apperrors.Internal("Failed to delete attachment", err)
	}

	if err := s.store.Delete(attachment.FilePath); err != nil {
		logger.Warnf("failed to delete blob %s for task %d: %v", attachment.FilePath, taskID, err)
	}
	return nil
}

// UploadCommentAttachment stores a blob and records it against a
// comment. Any person with access to the task may attach; the record
// carries no uploader.
func (s *AttachmentService) UploadCommentAttachment(commentID uint64, actor *models.Person, fileName string, r io.Reader) (*models.CommentAttachment, error) {
	if _, err := s.access.CheckCommentAccess(commentID, actor); err != nil {
		return nil, err
	}

	if fileName == "" {
		return nil, apperrors.Validation("File name is required")
	}

	path, err := s.store.Put(fmt.Sprintf("comments/%d", commentID), fileName, r)
	if err != nil {
		return nil, apperrors.Internal("Failed to store file", err)
	}

	attachment := &models.CommentAttachment{
		CommentID: commentID,
		FileName:  fileName,
		FileType:  detectFileType(fileName),
		FilePath:  path,
	}
	if err := s.attachmentRepo.CreateForComment(attachment); err != nil {
		if derr := s.store.Delete(path); derr != nil {
			logger.Warnf("failed to clean up blob %s: %v", path, derr)
		}
		return nil, apperrors.Internal("Failed to record attachment", err)
	}
	return attachment, nil
}

// ListCommentAttachments lists a comment's attachments, oldest first.
func (s *AttachmentService) ListCommentAttachments(commentID uint64, actor *models.Person) ([]models.CommentAttachment, error) {
	if _, err := s.access.CheckCommentAccess(commentID, actor); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.ListForComment(commentID)
	if err != nil {
		return nil, apperrors.Internal("Failed to list attachments", err)
	}
	return attachments, nil
}

// DownloadCommentAttachment opens a comment attachment's blob for
// streaming.
func (s *AttachmentService) DownloadCommentAttachment(commentID, attachmentID uint64, actor *models.Person) (*models.CommentAttachment, io.ReadCloser, error) {
	if _, err := s.access.CheckCommentAccess(commentID, actor); err != nil {
		return nil, nil, err
	}

	attachment, err := s.attachmentRepo.FindForComment(commentID, attachmentID)
	if err != nil {
		return nil, nil, apperrors.NotFound("Attachment not found")
	}

	blob, err := s.store.Get(attachment.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, apperrors.NotFound("Attachment file is missing")
		}
		return nil, nil, apperrors.Internal("Failed to open file", err)
	}
	return attachment, blob, nil
}

// DeleteCommentAttachment removes the record and best-effort deletes
// the blob.
func (s *AttachmentService) DeleteCommentAttachment(commentID, attachmentID uint64, actor *models.Person) error {
	if _, err := s.access.CheckCommentAccess(commentID, actor); err != nil {
		return err
	}

	attachment, err := s.attachmentRepo.FindForComment(commentID, attachmentID)
	if err != nil {
		return apperrors.NotFound("Attachment not found")
	}

	if err := s.attachmentRepo.DeleteForComment(commentID, attachmentID); err != nil {
		return apperrors.Internal("Failed to delete attachment", err)
	}

	if err := s.store.Delete(attachment.FilePath); err != nil {
		logger.Warnf("failed to delete blob %s for comment %d: %v", attachment.FilePath, commentID, err)
	}
	return nil
}
