package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"project-hub-api/internal/domain"
)

// CreateTaskRequest is the payload for creating a task
// @Description Task creation request
type CreateTaskRequest struct {
	ProjectID      uuid.UUID  `json:"projectId" binding:"required"`
	Title          string     `json:"title" binding:"required,max=255"`
	Description    string     `json:"description"`
	AssigneeID     *uuid.UUID `json:"assigneeId"`
	Priority       string     `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Tags           []string   `json:"tags"`
	EstimatedHours float64    `json:"estimatedHours"`
	DueDate        *string    `json:"dueDate"`
}

// UpdateTaskRequest is the payload for updating a task
// @Description Task update request, all fields optional
type UpdateTaskRequest struct {
	Title          *string    `json:"title" binding:"omitempty,max=255"`
	Description    *string    `json:"description"`
	AssigneeID     *uuid.UUID `json:"assigneeId"`
	ClearAssignee  bool       `json:"clearAssignee"`
	Status         *string    `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS REVIEW COMPLETED"`
	Priority       *string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Tags           []string   `json:"tags"`
	EstimatedHours *float64   `json:"estimatedHours"`
	DueDate        *string    `json:"dueDate"`
}

// TaskResponse is the view model for a task
type TaskResponse struct {
	ID             uuid.UUID  `json:"id"`
	ProjectID      uuid.UUID  `json:"projectId"`
	CreatedBy      uuid.UUID  `json:"createdBy"`
	AssigneeID     *uuid.UUID `json:"assigneeId,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	Tags           []string   `json:"tags"`
	EstimatedHours float64    `json:"estimatedHours"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ToTaskResponse maps a domain task to its view model
func ToTaskResponse(t *domain.Task) TaskResponse {
	var tags []string
	if len(t.Tags) > 0 {
		// Invalid stored JSON degrades to an empty tag list
		_ = json.Unmarshal(t.Tags, &tags)
	}
	return TaskResponse{
		ID:             t.ID,
		ProjectID:      t.ProjectID,
		CreatedBy:      t.CreatedBy,
		AssigneeID:     t.AssigneeID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		Tags:           tags,
		EstimatedHours: t.EstimatedHours,
		DueDate:        t.DueDate,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
