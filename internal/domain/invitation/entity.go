package invitation

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRevoked  Status = "revoked"
)

// Invitation links a freshly created employee record to the account that will
// eventually own it. The token travels by email.
type Invitation struct {
	ID         string
	ClientID   string
	EmployeeID string
	Email      string
	Token      string
	Status     Status
	ExpiresAt  time.Time
	AcceptedAt *time.Time
	RevokedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (i *Invitation) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

func (i *Invitation) CanBeAccepted() bool {
	return i.Status == StatusPending && !i.IsExpired()
}
