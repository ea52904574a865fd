package models

import "time"

type Comment struct {
	ID              uint64     `gorm:"primarykey" json:"comment_id"`
	TaskID          uint64     `gorm:"not null;index" json:"task_id"`
	PersonID        uint64     `gorm:"not null" json:"person_id"`
	Text            string     `gorm:"type:text;not null" json:"text"`
	IsSystemComment bool       `gorm:"not null;default:false" json:"is_system_comment"`
	CreatedAt       time.Time  `json:"created_at"`
	EditedAt        *time.Time `json:"edited_at"`

	// Relations
	Task        Task                `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Person      Person              `gorm:"foreignKey:PersonID" json:"person,omitempty"`
	Attachments []CommentAttachment `gorm:"foreignKey:CommentID" json:"attachments,omitempty"`
}

// CommentAttachment records no uploader, unlike TaskAttachment. The
// asymmetry is inherited from the original schema and kept as is.
type CommentAttachment struct {
	ID         uint64    `gorm:"primarykey" json:"attachment_id"`
	CommentID  uint64    `gorm:"not null;index" json:"comment_id"`
	FileName   string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FileType   string    `gorm:"type:varchar(100);not null" json:"file_type"`
	FilePath   string    `gorm:"type:varchar(500);not null" json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`

	// Relations
	Comment Comment `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
}
