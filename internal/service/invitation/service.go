package invitation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/leavehq/leave-backend-go/internal/config"
	"github.com/leavehq/leave-backend-go/internal/domain/employee"
	"github.com/leavehq/leave-backend-go/internal/domain/invitation"
	"github.com/leavehq/leave-backend-go/internal/domain/notification"
	"github.com/leavehq/leave-backend-go/internal/domain/user"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
	emailpkg "github.com/leavehq/leave-backend-go/internal/pkg/email"
)

const invitationTTL = 7 * 24 * time.Hour

type invitationServiceImpl struct {
	txm database.TxManager
	cfg *config.Config

	invitationRepo invitation.InvitationRepository
	employeeRepo   employee.EmployeeRepository
	userRepo       user.UserRepository

	notificationSvc notification.NotificationService
	emailSvc        emailpkg.EmailService
}

func NewInvitationService(
	txm database.TxManager,
	cfg *config.Config,
	invitationRepo invitation.InvitationRepository,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	notificationSvc notification.NotificationService,
	emailSvc emailpkg.EmailService,
) invitation.InvitationService {
	return &invitationServiceImpl{
		txm:             txm,
		cfg:             cfg,
		invitationRepo:  invitationRepo,
		employeeRepo:    employeeRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		emailSvc:        emailSvc,
	}
}

// CreateAndSend implements invitation.InvitationService.
func (s *invitationServiceImpl) CreateAndSend(ctx context.Context, employeeID, clientID, email string) (invitation.Invitation, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID, clientID)
	if err != nil {
		return invitation.Invitation{}, err
	}

	if _, err := s.invitationRepo.GetPendingByEmployeeID(ctx, employeeID, clientID); err == nil {
		return invitation.Invitation{}, invitation.ErrPendingExists
	} else if !errors.Is(err, invitation.ErrInvitationNotFound) {
		return invitation.Invitation{}, fmt.Errorf("failed to check pending invitations: %w", err)
	}

	created, err := s.invitationRepo.Create(ctx, invitation.Invitation{
		ClientID:   clientID,
		EmployeeID: employeeID,
		Email:      email,
		Token:      uuid.NewString(),
		Status:     invitation.StatusPending,
		ExpiresAt:  time.Now().Add(invitationTTL),
	})
	if err != nil {
		return invitation.Invitation{}, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.send(created, emp.FullName())
	return created, nil
}

func (s *invitationServiceImpl) send(inv invitation.Invitation, employeeName string) {
	link := fmt.Sprintf("%s/invitations/accept?token=%s", s.cfg.App.FrontendURL, inv.Token)
	expiresAt := inv.ExpiresAt.Format("2006-01-02 15:04 MST")

	go func() {
		if err := s.emailSvc.SendInvitation(inv.Email, employeeName, emailpkg.Branding{}, link, expiresAt); err != nil {
			slog.Error("Failed to send invitation email",
				"invitation_id", inv.ID, "error", err)
		}
	}()
}

// GetByToken implements invitation.InvitationService. Used by the accept
// page to show whom the invitation belongs to.
func (s *invitationServiceImpl) GetByToken(ctx context.Context, token string) (invitation.InvitationResponse, error) {
	inv, err := s.invitationRepo.GetByToken(ctx, token)
	if err != nil {
		return invitation.InvitationResponse{}, err
	}
	if err := checkAcceptable(inv); err != nil {
		return invitation.InvitationResponse{}, err
	}
	return invitation.ToInvitationResponse(inv), nil
}

func checkAcceptable(inv invitation.Invitation) error {
	switch {
	case inv.Status == invitation.StatusAccepted:
		return invitation.ErrAlreadyAccepted
	case inv.Status == invitation.StatusRevoked:
		return invitation.ErrInvitationRevoked
	case inv.IsExpired():
		return invitation.ErrInvitationExpired
	}
	return nil
}

// Accept implements invitation.InvitationService. Creates the login account
// and marks the invitation in one transaction.
func (s *invitationServiceImpl) Accept(ctx context.Context, req invitation.AcceptRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	inv, err := s.invitationRepo.GetByToken(ctx, req.Token)
	if err != nil {
		return err
	}
	if err := checkAcceptable(inv); err != nil {
		return err
	}

	emp, err := s.employeeRepo.GetByID(ctx, inv.EmployeeID, inv.ClientID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	role := user.RoleEmployee
	if emp.IsAdmin {
		role = user.RoleClientAdmin
	}

	err = s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err := s.userRepo.Create(ctx, user.User{
			ClientID:     &inv.ClientID,
			EmployeeID:   &inv.EmployeeID,
			Email:        inv.Email,
			PasswordHash: string(hash),
			Role:         role,
		})
		if err != nil {
			return fmt.Errorf("failed to create user account: %w", err)
		}
		if err := s.userRepo.MarkEmailVerified(ctx, created.ID); err != nil {
			return err
		}
		return s.invitationRepo.MarkAccepted(ctx, inv.ID)
	})
	if err != nil {
		return err
	}

	if emp.LineManagerID != nil {
		s.notificationSvc.Notify(ctx, notification.Notification{
			ClientID:    inv.ClientID,
			RecipientID: *emp.LineManagerID,
			SenderID:    &emp.ID,
			Type:        notification.TypeEmployeeJoined,
			Title:       "Employee joined",
			Message:     fmt.Sprintf("%s accepted their invitation", emp.FullName()),
		})
	}
	return nil
}

// Resend implements invitation.InvitationService. Revokes the pending
// invitation and issues a fresh token.
func (s *invitationServiceImpl) Resend(ctx context.Context, employeeID, clientID string) error {
	pending, err := s.invitationRepo.GetPendingByEmployeeID(ctx, employeeID, clientID)
	if err != nil && !errors.Is(err, invitation.ErrInvitationNotFound) {
		return err
	}
	if err == nil {
		if err := s.invitationRepo.MarkRevoked(ctx, pending.ID); err != nil {
			return err
		}
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, clientID)
	if err != nil {
		return err
	}

	_, err = s.CreateAndSend(ctx, employeeID, clientID, emp.Email)
	return err
}

// Revoke implements invitation.InvitationService.
func (s *invitationServiceImpl) Revoke(ctx context.Context, employeeID, clientID string) error {
	pending, err := s.invitationRepo.GetPendingByEmployeeID(ctx, employeeID, clientID)
	if err != nil {
		return err
	}
	return s.invitationRepo.MarkRevoked(ctx, pending.ID)
}
