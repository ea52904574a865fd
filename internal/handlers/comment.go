package handlers

import (
	"net/http"

	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/dto"
	"github.com/AranyaAryaman/noJIRA/internal/middleware"
	"github.com/AranyaAryaman/noJIRA/internal/services"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateComment appends a comment to a task's thread
func (h *CommentHandler) CreateComment(c *gin.Context) {
	actor := middleware.GetActor(c)
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(taskID, actor, req.Text)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListComments returns a task's thread oldest first
func (h *CommentHandler) ListComments(c *gin.Context) {
	actor := middleware.GetActor(c)
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(taskID, actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": dto.ToCommentDTOs(comments)})
}

// UpdateComment edits a comment's text
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	actor := middleware.GetActor(c)
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(commentID, actor, req.Text)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// DeleteComment deletes a comment and its attachments
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	actor := middleware.GetActor(c)
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(commentID, actor); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
