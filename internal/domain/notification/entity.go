package notification

import "time"

type NotificationType string

const (
	TypeLeaveRequested       NotificationType = "leave_requested"
	TypeLeaveManagerApproved NotificationType = "leave_manager_approved"
	TypeLeaveApproved        NotificationType = "leave_approved"
	TypeLeaveRejected        NotificationType = "leave_rejected"
	TypeInvitationSent       NotificationType = "invitation_sent"
	TypeEmployeeJoined       NotificationType = "employee_joined"
)

// Notification is an in-app notification record. RecipientID is an employee
// id; leave transitions fan one out to the employee, their line manager, and
// their reliever as relevant.
type Notification struct {
	ID          string
	ClientID    string
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
