package events

import (
	"github.com/google/uuid"
)

// Topic identifies an event stream on the bus
type Topic string

const (
	TopicTaskChanged         Topic = "task.changed"
	TopicActivityChanged     Topic = "activity.changed"
	TopicUserChanged         Topic = "user.changed"
	TopicNotificationCreated Topic = "notification.created"
	TopicPanelOpened         Topic = "panel.opened"
)

// TaskChanged is published whenever a task is created, updated or deleted
type TaskChanged struct {
	TaskID    uuid.UUID `json:"taskId"`
	ProjectID uuid.UUID `json:"projectId"`
	Action    string    `json:"action"`
}

// Topic implements Event
func (TaskChanged) Topic() Topic { return TopicTaskChanged }

// ActivityChanged is published whenever a new activity row is recorded
type ActivityChanged struct {
	ActivityID uuid.UUID `json:"activityId"`
	ProjectID  uuid.UUID `json:"projectId"`
}

// Topic implements Event
func (ActivityChanged) Topic() Topic { return TopicActivityChanged }

// UserChanged is published whenever a user profile is updated
type UserChanged struct {
	UserID uuid.UUID `json:"userId"`
}

// Topic implements Event
func (UserChanged) Topic() Topic { return TopicUserChanged }

// NotificationCreated is published once per notification row the fan-out
// service inserts
type NotificationCreated struct {
	NotificationID uuid.UUID `json:"notificationId"`
	UserID         uuid.UUID `json:"userId"`
	Type           string    `json:"type"`
}

// Topic implements Event
func (NotificationCreated) Topic() Topic { return TopicNotificationCreated }

// PanelOpened is published when a detail panel is opened programmatically
type PanelOpened struct {
	Key string    `json:"key"`
	ID  uuid.UUID `json:"id"`
}

// Topic implements Event
func (PanelOpened) Topic() Topic { return TopicPanelOpened }

// Event is any payload that knows its topic
type Event interface {
	Topic() Topic
}
