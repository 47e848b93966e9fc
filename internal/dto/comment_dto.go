package dto

import (
	"time"

	"github.com/google/uuid"

	"project-hub-api/internal/domain"
)

// CreateCommentRequest is the payload for posting a comment
// @Description Comment creation request
type CreateCommentRequest struct {
	TaskID  uuid.UUID `json:"taskId" binding:"required"`
	Content string    `json:"content" binding:"required"`
}

// UpdateCommentRequest is the payload for editing a comment
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse is the view model for a comment
type CommentResponse struct {
	ID        uuid.UUID  `json:"id"`
	TaskID    uuid.UUID  `json:"taskId"`
	ProjectID uuid.UUID  `json:"projectId"`
	UserID    uuid.UUID  `json:"userId"`
	Content   string     `json:"content"`
	Edited    bool       `json:"edited"`
	EditedAt  *time.Time `json:"editedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ToCommentResponse maps a domain comment to its view model
func ToCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		ProjectID: c.ProjectID,
		UserID:    c.UserID,
		Content:   c.Content,
		Edited:    c.IsEdited(),
		EditedAt:  c.EditedAt,
		CreatedAt: c.CreatedAt,
	}
}
