package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/dto"
	"github.com/AranyaAryaman/noJIRA/internal/logger"
	"github.com/AranyaAryaman/noJIRA/internal/middleware"
	"github.com/AranyaAryaman/noJIRA/internal/services"
	"github.com/gin-gonic/gin"
)

type AttachmentHandler struct {
	attachmentService *services.AttachmentService
}

func NewAttachmentHandler(attachmentService *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// UploadTaskAttachment stores a multipart file against a task
func (h *AttachmentHandler) UploadTaskAttachment(c *gin.Context) {
	actor := middleware.GetActor(c)
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, "A file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to read upload", err))
		return
	}
	defer file.Close()

	attachment, err := h.attachmentService.UploadTaskAttachment(taskID, actor, fileHeader.Filename, file)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskAttachmentDTO(*attachment))
}

// ListTaskAttachments lists a task's attachments
func (h *AttachmentHandler) ListTaskAttachments(c *gin.Context) {
	actor := middleware.GetActor(c)
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	attachments, err := h.attachmentService.ListTaskAttachments(taskID, actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attachments": dto.ToTaskAttachmentDTOs(attachments)})
}

// DownloadTaskAttachment streams an attachment's file
func (h *AttachmentHandler) DownloadTaskAttachment(c *gin.Context) {
	actor := middleware.GetActor(c)
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}
	attachmentID, ok := pathID(c, "attachment_id")
	if !ok {
		return
	}

	attachment, blob, err := h.attachmentService.DownloadTaskAttachment(taskID, attachmentID, actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	defer blob.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.FileName))
	c.Header("Content-Type", attachment.FileType)
	if _, err := io.Copy(c.Writer, blob); err != nil {
		logger.Warnf("failed to stream attachment %d: %v", attachment.ID, err)
	}
}

// DeleteTaskAttachment removes an attachment and its file
func (h *AttachmentHandler) DeleteTaskAttachment(c *gin.Context) {
	actor := middleware.GetActor(c)
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}
	attachmentID, ok := pathID(c, "attachment_id")
	if !ok {
		return
	}

	if err := h.attachmentService.DeleteTaskAttachment(taskID, attachmentID, actor); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted"})
}

// UploadCommentAttachment stores a multipart file against a comment
func (h *AttachmentHandler) UploadCommentAttachment(c *gin.Context) {
	actor := middleware.GetActor(c)
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, "A file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to read upload", err))
		return
	}
	defer file.Close()

	attachment, err := h.attachmentService.UploadCommentAttachment(commentID, actor, fileHeader.Filename, file)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentAttachmentDTO(*attachment))
}

// ListCommentAttachments lists a comment's attachments
func (h *AttachmentHandler) ListCommentAttachments(c *gin.Context) {
	actor := middleware.GetActor(c)
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	attachments, err := h.attachmentService.ListCommentAttachments(commentID, actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attachments": dto.ToCommentAttachmentDTOs(attachments)})
}

// DownloadCommentAttachment streams a comment attachment's file
func (h *AttachmentHandler) DownloadCommentAttachment(c *gin.Context) {
	actor := middleware.GetActor(c)
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	attachmentID, ok := pathID(c, "attachment_id")
	if !ok {
		return
	}

	attachment, blob, err := h.attachmentService.DownloadCommentAttachment(commentID, attachmentID, actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	defer blob.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.FileName))
	c.Header("Content-Type", attachment.FileType)
	if _, err := io.Copy(c.Writer, blob); err != nil {
		logger.Warnf("failed to stream attachment %d: %v", attachment.ID, err)
	}
}

// DeleteCommentAttachment removes a comment attachment and its file
func (h *AttachmentHandler) DeleteCommentAttachment(c *gin.Context) {
	actor := middleware.GetActor(c)
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	attachmentID, ok := pathID(c, "attachment_id")
	if !ok {
		return
	}

	if err := h.attachmentService.DeleteCommentAttachment(commentID, attachmentID, actor); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted"})
}
