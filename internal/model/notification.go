package model

// NotificationKind classifies a short-lived user-facing message.
type NotificationKind string

const (
    NotifySuccess NotificationKind = "success"
    NotifyError   NotificationKind = "error"
    NotifyInfo    NotificationKind = "info"
    NotifyWarning NotificationKind = "warning"
)

// DefaultNotificationDuration is how long clients keep a message on screen
// when the producer does not say otherwise, in milliseconds.
const DefaultNotificationDuration = 5000

// Notification is the message shown to the user after a mutation attempt,
// successful or not. Every mutation produces at least one.
type Notification struct {
    Kind       NotificationKind `json:"kind"`
    Message    string           `json:"message"`
    DurationMS int              `json:"duration_ms"`
}

// NewNotification builds a notification with the default display duration.
func NewNotification(kind NotificationKind, message string) Notification {
    return Notification{Kind: kind, Message: message, DurationMS: DefaultNotificationDuration}
}
