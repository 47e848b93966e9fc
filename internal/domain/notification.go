package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType represents the kind of event a notification describes
type NotificationType string

const (
	NotificationTaskAssigned NotificationType = "TASK_ASSIGNED"
	NotificationComment      NotificationType = "COMMENT"
	NotificationFileUploaded NotificationType = "FILE_UPLOADED"
)

// Notification is created by the fan-out service and mutated only by
// marking it read. The recipient is never the actor of the event.
type Notification struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:(gen_random_uuid())" json:"id"`
	Type          NotificationType `gorm:"type:varchar(50);not null" json:"type"`
	Content       string           `gorm:"type:text;not null" json:"content"`
	Link          string           `gorm:"type:text" json:"link"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index:idx_notifications_user_id" json:"user_id"`
	RelatedUserID uuid.UUID        `gorm:"type:uuid;not null" json:"related_user_id"`
	IsRead        bool             `gorm:"not null;default:false;index:idx_notifications_is_read" json:"is_read"`
	ReadAt        *time.Time       `gorm:"type:timestamp" json:"read_at,omitempty"`
	CreatedAt     time.Time        `gorm:"not null;index:idx_notifications_created_at" json:"created_at"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
