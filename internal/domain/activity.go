package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityAction represents the kind of action an activity records
type ActivityAction string

const (
	ActivityActionCreated   ActivityAction = "CREATED"
	ActivityActionUpdated   ActivityAction = "UPDATED"
	ActivityActionCompleted ActivityAction = "COMPLETED"
	ActivityActionCommented ActivityAction = "COMMENTED"
	ActivityActionUploaded  ActivityAction = "UPLOADED"
)

// ActivityTarget represents the entity kind an activity refers to
type ActivityTarget string

const (
	ActivityTargetTask    ActivityTarget = "TASK"
	ActivityTargetProject ActivityTarget = "PROJECT"
	ActivityTargetFile    ActivityTarget = "FILE"
)

// Activity is an append-only audit log entry. Rows are never mutated.
type Activity struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_activities_user_id" json:"user_id"`
	ProjectID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_activities_project_id" json:"project_id"`
	Action     ActivityAction `gorm:"type:varchar(50);not null" json:"action"`
	TargetType ActivityTarget `gorm:"type:varchar(50);not null;index:idx_activities_target,priority:1" json:"target_type"`
	TargetID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_activities_target,priority:2" json:"target_id"`
	TargetName string         `gorm:"type:varchar(255);not null" json:"target_name"`
	Content    *string        `gorm:"type:text" json:"content,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;index:idx_activities_created_at" json:"created_at"`
}

// TableName specifies the table name for Activity
func (Activity) TableName() string {
	return "activities"
}
