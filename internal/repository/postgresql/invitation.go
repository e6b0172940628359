package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/invitation"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type invitationRepositoryImpl struct {
	db *database.DB
}

func NewInvitationRepository(db *database.DB) invitation.InvitationRepository {
	return &invitationRepositoryImpl{db: db}
}

// Create implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) Create(ctx context.Context, inv invitation.Invitation) (invitation.Invitation, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invitations (client_id, employee_id, email, token, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	created := inv
	err := q.QueryRow(ctx, query,
		inv.ClientID, inv.EmployeeID, inv.Email, inv.Token, inv.Status, inv.ExpiresAt,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return invitation.Invitation{}, err
	}
	return created, nil
}

// GetByToken implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) GetByToken(ctx context.Context, token string) (invitation.Invitation, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, client_id, employee_id, email, token, status, expires_at,
			   accepted_at, revoked_at, created_at, updated_at
		FROM invitations
		WHERE token = $1
	`

	var found invitation.Invitation
	err := q.QueryRow(ctx, query, token).
		Scan(&found.ID, &found.ClientID, &found.EmployeeID, &found.Email, &found.Token,
			&found.Status, &found.ExpiresAt, &found.AcceptedAt, &found.RevokedAt,
			&found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return invitation.Invitation{}, invitation.ErrInvitationNotFound
		}
		return invitation.Invitation{}, err
	}
	return found, nil
}

// GetPendingByEmployeeID implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) GetPendingByEmployeeID(ctx context.Context, employeeID, clientID string) (invitation.Invitation, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, client_id, employee_id, email, token, status, expires_at,
			   accepted_at, revoked_at, created_at, updated_at
		FROM invitations
		WHERE employee_id = $1 AND client_id = $2 AND status = 'pending'
		ORDER BY created_at DESC
		LIMIT 1
	`

	var found invitation.Invitation
	err := q.QueryRow(ctx, query, employeeID, clientID).
		Scan(&found.ID, &found.ClientID, &found.EmployeeID, &found.Email, &found.Token,
			&found.Status, &found.ExpiresAt, &found.AcceptedAt, &found.RevokedAt,
			&found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return invitation.Invitation{}, invitation.ErrInvitationNotFound
		}
		return invitation.Invitation{}, err
	}
	return found, nil
}

// MarkAccepted implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) MarkAccepted(ctx context.Context, id string) error {
	q := database.GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx,
		`UPDATE invitations SET status = 'accepted', accepted_at = NOW(), updated_at = NOW() WHERE id = $1`,
		id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return invitation.ErrInvitationNotFound
	}
	return nil
}

// MarkRevoked implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) MarkRevoked(ctx context.Context, id string) error {
	q := database.GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx,
		`UPDATE invitations SET status = 'revoked', revoked_at = NOW(), updated_at = NOW() WHERE id = $1`,
		id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return invitation.ErrInvitationNotFound
	}
	return nil
}

// DeleteByEmployeeID implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID, clientID string) error {
	q := database.GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`DELETE FROM invitations WHERE employee_id = $1 AND client_id = $2`,
		employeeID, clientID)
	return err
}
