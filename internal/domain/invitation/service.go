package invitation

import "context"

type InvitationService interface {
	// CreateAndSend issues an invitation for a new employee and emails the
	// accept link. Called from the employee service after creation.
	CreateAndSend(ctx context.Context, employeeID, clientID, email string) (Invitation, error)

	GetByToken(ctx context.Context, token string) (InvitationResponse, error)

	// Accept creates the user account with the chosen password and links it
	// to the invited employee.
	Accept(ctx context.Context, req AcceptRequest) error

	Resend(ctx context.Context, employeeID, clientID string) error
	Revoke(ctx context.Context, employeeID, clientID string) error
}
