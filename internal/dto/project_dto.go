package dto

import (
	"time"

	"github.com/google/uuid"

	"project-hub-api/internal/domain"
)

// CreateProjectRequest is the payload for creating a project
// @Description Project creation request
type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description string  `json:"description"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Category    string  `json:"category"`
	DueDate     *string `json:"dueDate"`
}

// UpdateProjectRequest is the payload for updating a project
// @Description Project update request, all fields optional
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=NOT_STARTED PLANNING IN_PROGRESS COMPLETED"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Progress    *int    `json:"progress" binding:"omitempty,min=0,max=100"`
	Category    *string `json:"category"`
	DueDate     *string `json:"dueDate"`
}

// ProjectResponse is the view model for a project
type ProjectResponse struct {
	ID          uuid.UUID               `json:"id"`
	OwnerID     uuid.UUID               `json:"ownerId"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Status      string                  `json:"status"`
	Priority    string                  `json:"priority"`
	Progress    int                     `json:"progress"`
	Category    string                  `json:"category"`
	DueDate     *time.Time              `json:"dueDate,omitempty"`
	Members     []ProjectMemberResponse `json:"members,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

// ProjectMemberResponse is the view model for a project member
type ProjectMemberResponse struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"projectId"`
	UserID    uuid.UUID `json:"userId"`
	RoleName  string    `json:"roleName"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// AddMemberRequest is the payload for adding a project member
type AddMemberRequest struct {
	UserID   uuid.UUID `json:"userId" binding:"required"`
	RoleName string    `json:"roleName" binding:"required,oneof=OWNER ADMIN MEMBER VIEWER"`
}

// ToProjectResponse maps a domain project to its view model
func ToProjectResponse(p *domain.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		Priority:    string(p.Priority),
		Progress:    p.Progress,
		Category:    p.Category,
		DueDate:     p.DueDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, m := range p.Members {
		resp.Members = append(resp.Members, ToProjectMemberResponse(&m))
	}
	return resp
}

// ToProjectMemberResponse maps a domain member to its view model
func ToProjectMemberResponse(m *domain.ProjectMember) ProjectMemberResponse {
	return ProjectMemberResponse{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		RoleName:  string(m.RoleName),
		JoinedAt:  m.JoinedAt,
	}
}
