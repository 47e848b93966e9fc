package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a comment on a task
type Comment struct {
	BaseModel
	TaskID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_comments_task_id" json:"task_id"`
	ProjectID uuid.UUID  `gorm:"type:uuid;not null;index:idx_comments_project_id" json:"project_id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_comments_user_id" json:"user_id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	EditedAt  *time.Time `gorm:"type:timestamp" json:"edited_at,omitempty"`
	Task      Task       `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"task,omitempty"`
}

// IsEdited reports whether the comment has been edited after creation
func (c *Comment) IsEdited() bool {
	return c.EditedAt != nil
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
