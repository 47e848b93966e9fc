package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TaskStatus represents the workflow status of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusReview     TaskStatus = "REVIEW"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// Task represents a work item within a project
type Task struct {
	BaseModel
	ProjectID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_tasks_project_id" json:"project_id"`
	CreatedBy      uuid.UUID      `gorm:"type:uuid;not null;index:idx_tasks_created_by" json:"created_by"`
	AssigneeID     *uuid.UUID     `gorm:"type:uuid;index:idx_tasks_assignee_id" json:"assignee_id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Status         TaskStatus     `gorm:"type:varchar(50);not null;default:'TODO';index:idx_tasks_status" json:"status"`
	Priority       Priority       `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	Tags           datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	EstimatedHours float64        `gorm:"default:0" json:"estimated_hours"`
	DueDate        *time.Time     `gorm:"type:timestamp;index:idx_tasks_due_date" json:"due_date"`
	Project        Project        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Comments       []Comment      `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}
