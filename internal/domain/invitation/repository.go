package invitation

import "context"

type InvitationRepository interface {
	Create(ctx context.Context, inv Invitation) (Invitation, error)
	GetByToken(ctx context.Context, token string) (Invitation, error)
	GetPendingByEmployeeID(ctx context.Context, employeeID, clientID string) (Invitation, error)
	MarkAccepted(ctx context.Context, id string) error
	MarkRevoked(ctx context.Context, id string) error
	DeleteByEmployeeID(ctx context.Context, employeeID, clientID string) error
}
