package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLeaveRequested NotificationType = "leave_requested"
	TypeLeaveApproved  NotificationType = "leave_approved"
	TypeLeaveRejected  NotificationType = "leave_rejected"
	TypeLeaveOnHold    NotificationType = "leave_on_hold"
	TypeBadgeEarned    NotificationType = "badge_earned"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeLeaveRequested,
		TypeLeaveApproved,
		TypeLeaveRejected,
		TypeLeaveOnHold,
		TypeBadgeEarned,
	}
}

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
