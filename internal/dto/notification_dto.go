package dto

import (
	"time"

	"github.com/google/uuid"

	"project-hub-api/internal/domain"
)

// NotificationResponse is the view model for a notification
type NotificationResponse struct {
	ID            uuid.UUID  `json:"id"`
	Type          string     `json:"type"`
	Content       string     `json:"content"`
	Link          string     `json:"link"`
	RelatedUserID uuid.UUID  `json:"relatedUserId"`
	Read          bool       `json:"read"`
	ReadAt        *time.Time `json:"readAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// NotificationListResponse is a page of notifications with totals
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	UnreadCount   int64                  `json:"unreadCount"`
}

// UnreadCountResponse carries the unread counter polled by clients
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// ToNotificationResponse maps a domain notification to its view model
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.ID,
		Type:          string(n.Type),
		Content:       n.Content,
		Link:          n.Link,
		RelatedUserID: n.RelatedUserID,
		Read:          n.IsRead,
		ReadAt:        n.ReadAt,
		CreatedAt:     n.CreatedAt,
	}
}
