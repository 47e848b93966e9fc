package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle status of a project
type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "NOT_STARTED"
	ProjectStatusPlanning   ProjectStatus = "PLANNING"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
)

// Priority represents a priority level shared by projects and tasks
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Project represents a project entity
type Project struct {
	BaseModel
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_projects_owner_id" json:"owner_id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Status      ProjectStatus   `gorm:"type:varchar(50);not null;default:'NOT_STARTED';index:idx_projects_status" json:"status"`
	Priority    Priority        `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	Progress    int             `gorm:"not null;default:0" json:"progress"`
	Category    string          `gorm:"type:varchar(100)" json:"category"`
	DueDate     *time.Time      `gorm:"type:timestamp" json:"due_date,omitempty"`
	Members     []ProjectMember `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Tasks       []Task          `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

// ProjectRole represents the role of a project member
type ProjectRole string

const (
	ProjectRoleOwner  ProjectRole = "OWNER"
	ProjectRoleAdmin  ProjectRole = "ADMIN"
	ProjectRoleMember ProjectRole = "MEMBER"
	ProjectRoleViewer ProjectRole = "VIEWER"
)

// CanManage reports whether the role may edit or delete project resources
func (r ProjectRole) CanManage() bool {
	return r == ProjectRoleOwner || r == ProjectRoleAdmin
}

// ProjectMember represents a member of a project.
// Historic data may contain duplicate (project_id, user_id) pairs, so the
// index is intentionally non-unique; consumers must deduplicate by user id.
type ProjectMember struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProjectID uuid.UUID   `gorm:"type:uuid;not null;index:idx_project_members_project_id" json:"project_id"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index:idx_project_members_user_id" json:"user_id"`
	RoleName  ProjectRole `gorm:"type:varchar(50);not null;index:idx_project_members_role" json:"role_name"`
	JoinedAt  time.Time   `gorm:"type:timestamp;not null;default:now()" json:"joined_at"`
	Project   Project     `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// TableName specifies the table name for ProjectMember
func (ProjectMember) TableName() string {
	return "project_members"
}
