package models

import "time"

// NotificationType is a closed variant set; the client maps each value to
// an icon and colour, nothing here is free-form.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Notification is one transient status message. DurationMs zero means the
// notification stays until dismissed by hand.
type Notification struct {
	ID         string           `json:"id" bson:"id"`
	UserID     string           `json:"userId,omitempty" bson:"userId"`
	Type       NotificationType `json:"type" bson:"type"`
	Message    string           `json:"message" bson:"message"`
	DurationMs int              `json:"durationMs" bson:"durationMs"`
	CreatedAt  time.Time        `json:"createdAt" bson:"createdAt"`
}
