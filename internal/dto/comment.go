package dto

import (
	"time"

	"github.com/AranyaAryaman/noJIRA/internal/models"
)

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID              uint64                 `json:"comment_id"`
	TaskID          uint64                 `json:"task_id"`
	Author          PersonBriefDTO         `json:"author"`
	Text            string                 `json:"text"`
	IsSystemComment bool                   `json:"is_system_comment"`
	CreatedAt       time.Time              `json:"created_at"`
	EditedAt        *time.Time             `json:"edited_at"`
	Attachments     []CommentAttachmentDTO `json:"attachments"`
}

// CommentAttachmentDTO represents a comment attachment in API responses
type CommentAttachmentDTO struct {
	ID         uint64    `json:"attachment_id"`
	CommentID  uint64    `json:"comment_id"`
	FileName   string    `json:"file_name"`
	FileType   string    `json:"file_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ToCommentDTO converts a comment with preloaded relations to DTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	attachments := make([]CommentAttachmentDTO, len(comment.Attachments))
	for i, a := range comment.Attachments {
		attachments[i] = ToCommentAttachmentDTO(a)
	}

	return CommentDTO{
		ID:              comment.ID,
		TaskID:          comment.TaskID,
		Author:          PersonBriefDTO{ID: comment.Person.ID, Name: comment.Person.Name},
		Text:            comment.Text,
		IsSystemComment: comment.IsSystemComment,
		CreatedAt:       comment.CreatedAt,
		EditedAt:        comment.EditedAt,
		Attachments:     attachments,
	}
}

// ToCommentDTOs converts a slice of comments to DTOs
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = ToCommentDTO(c)
	}
	return dtos
}

// ToCommentAttachmentDTO converts a comment attachment to DTO
func ToCommentAttachmentDTO(a models.CommentAttachment) CommentAttachmentDTO {
	return CommentAttachmentDTO{
		ID:         a.ID,
		CommentID:  a.CommentID,
		FileName:   a.FileName,
		FileType:   a.FileType,
		UploadedAt: a.UploadedAt,
	}
}

// ToCommentAttachmentDTOs converts comment attachments to DTOs
func ToCommentAttachmentDTOs(attachments []models.CommentAttachment) []CommentAttachmentDTO {
	dtos := make([]CommentAttachmentDTO, len(attachments))
	for i, a := range attachments {
		dtos[i] = ToCommentAttachmentDTO(a)
	}
	return dtos
}
