package dto

import (
	"time"

	"github.com/google/uuid"

	"project-hub-api/internal/domain"
)

// ActivityResponse is the view model for an activity log entry
type ActivityResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	ProjectID  uuid.UUID `json:"projectId"`
	Action     string    `json:"action"`
	TargetType string    `json:"targetType"`
	TargetID   uuid.UUID `json:"targetId"`
	TargetName string    `json:"targetName"`
	Content    *string   `json:"content,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToActivityResponse maps a domain activity to its view model
func ToActivityResponse(a *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		ProjectID:  a.ProjectID,
		Action:     string(a.Action),
		TargetType: string(a.TargetType),
		TargetID:   a.TargetID,
		TargetName: a.TargetName,
		Content:    a.Content,
		CreatedAt:  a.CreatedAt,
	}
}
