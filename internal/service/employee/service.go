package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leavehq/leave-backend-go/internal/domain/employee"
	"github.com/leavehq/leave-backend-go/internal/domain/invitation"
	"github.com/leavehq/leave-backend-go/internal/domain/level"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

// balanceSeeder is the slice of the leave service the employee lifecycle
// needs: seeding on creation and reseeding on a level change.
type balanceSeeder interface {
	SeedForEmployee(ctx context.Context, employeeID, clientID string, levelID *string) error
	ReseedForLevel(ctx context.Context, employeeID, clientID string, levelID *string) error
	DeleteBalancesForEmployee(ctx context.Context, employeeID, clientID string) error
}

type employeeServiceImpl struct {
	txm database.TxManager

	employeeRepo   employee.EmployeeRepository
	levelRepo      level.LevelRepository
	invitationRepo invitation.InvitationRepository

	seeder        balanceSeeder
	invitationSvc invitation.InvitationService
}

func NewEmployeeService(
	txm database.TxManager,
	employeeRepo employee.EmployeeRepository,
	levelRepo level.LevelRepository,
	invitationRepo invitation.InvitationRepository,
	seeder balanceSeeder,
	invitationSvc invitation.InvitationService,
) employee.EmployeeService {
	return &employeeServiceImpl{
		txm:            txm,
		employeeRepo:   employeeRepo,
		levelRepo:      levelRepo,
		invitationRepo: invitationRepo,
		seeder:         seeder,
		invitationSvc:  invitationSvc,
	}
}

// CreateEmployee implements employee.EmployeeService. The record and its
// seeded balances land in one transaction; the invitation email goes out
// after commit.
func (s *employeeServiceImpl) CreateEmployee(ctx context.Context, clientID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.employeeRepo.GetByEmail(ctx, clientID, req.Email); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee email: %w", err)
	}

	if req.LevelID != nil {
		if _, err := s.levelRepo.GetByID(ctx, *req.LevelID, clientID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}
	if err := s.checkReference(ctx, clientID, req.LineManagerID); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkReference(ctx, clientID, req.RelieverID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var created employee.Employee
	err := s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.employeeRepo.Create(ctx, employee.Employee{
			ClientID:      clientID,
			StaffID:       req.StaffID,
			Firstname:     req.Firstname,
			Middlename:    req.Middlename,
			Surname:       req.Surname,
			Email:         req.Email,
			Gender:        employee.Gender(req.Gender),
			JobRole:       req.JobRole,
			Branch:        req.Branch,
			LevelID:       req.LevelID,
			LineManagerID: req.LineManagerID,
			RelieverID:    req.RelieverID,
			IsAdmin:       req.IsAdmin,
			IsActive:      true,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		return s.seeder.SeedForEmployee(ctx, created.ID, clientID, created.LevelID)
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.invitationSvc.CreateAndSend(ctx, created.ID, clientID, created.Email); err != nil {
		slog.Error("Failed to send invitation for new employee",
			"employee_id", created.ID, "error", err)
	}

	return employee.ToEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService. An unchanged level id
// is a strict no-op for the ledger; a changed one reseeds inside the same
// transaction as the update.
func (s *employeeServiceImpl) UpdateEmployee(ctx context.Context, clientID string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID, clientID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.checkReference(ctx, clientID, req.LineManagerID); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkReference(ctx, clientID, req.RelieverID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	levelChanged := false
	if req.LevelID != nil {
		if _, err := s.levelRepo.GetByID(ctx, *req.LevelID, clientID); err != nil {
			return employee.EmployeeResponse{}, err
		}
		levelChanged = current.LevelID == nil || *current.LevelID != *req.LevelID
	}

	err = s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.employeeRepo.Update(ctx, req, clientID); err != nil {
			return err
		}
		if levelChanged {
			return s.seeder.ReseedForLevel(ctx, req.ID, clientID, req.LevelID)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID, clientID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToEmployeeResponse(updated), nil
}

// checkReference verifies a line manager or reliever id points at a real
// employee in the same client.
func (s *employeeServiceImpl) checkReference(ctx context.Context, clientID string, id *string) error {
	if id == nil {
		return nil
	}
	_, err := s.employeeRepo.GetByID(ctx, *id, clientID)
	return err
}

// GetEmployee implements employee.EmployeeService.
func (s *employeeServiceImpl) GetEmployee(ctx context.Context, id, clientID string) (employee.EmployeeResponse, error) {
	found, err := s.employeeRepo.GetByID(ctx, id, clientID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToEmployeeResponse(found), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *employeeServiceImpl) ListEmployees(ctx context.Context, clientID string) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToEmployeeResponse(e))
	}
	return responses, nil
}

// DeleteEmployee implements employee.EmployeeService. The cascade removes
// balances and invitations and clears the employee from other employees'
// line manager and reliever slots, all in one transaction.
func (s *employeeServiceImpl) DeleteEmployee(ctx context.Context, id, clientID string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id, clientID); err != nil {
		return err
	}

	return s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.seeder.DeleteBalancesForEmployee(ctx, id, clientID); err != nil {
			return err
		}
		if err := s.employeeRepo.NullifyReferences(ctx, id, clientID); err != nil {
			return fmt.Errorf("failed to clear manager/reliever references: %w", err)
		}
		if err := s.invitationRepo.DeleteByEmployeeID(ctx, id, clientID); err != nil {
			return fmt.Errorf("failed to remove invitations: %w", err)
		}
		return s.employeeRepo.Delete(ctx, id, clientID)
	})
}
