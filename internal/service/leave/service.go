package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leavehq/leave-backend-go/internal/domain/client"
	"github.com/leavehq/leave-backend-go/internal/domain/employee"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/domain/level"
	"github.com/leavehq/leave-backend-go/internal/domain/notification"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
	"github.com/leavehq/leave-backend-go/internal/pkg/email"
)

// LeaveServiceImpl implements leave.LeaveService. The type catalog, the
// balance ledger, and the request state machine share one service because
// every catalog mutation cascades into the ledger and every request
// transition reads or writes it.
type LeaveServiceImpl struct {
	txm database.TxManager

	typeRepo     leave.LeaveTypeRepository
	balanceRepo  leave.LeaveBalanceRepository
	requestRepo  leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
	levelRepo    level.LevelRepository
	clientRepo   client.ClientRepository

	notificationSvc notification.NotificationService
	emailSvc        email.EmailService
}

func NewLeaveService(
	txm database.TxManager,
	typeRepo leave.LeaveTypeRepository,
	balanceRepo leave.LeaveBalanceRepository,
	requestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	levelRepo level.LevelRepository,
	clientRepo client.ClientRepository,
	notificationSvc notification.NotificationService,
	emailSvc email.EmailService,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		txm:             txm,
		typeRepo:        typeRepo,
		balanceRepo:     balanceRepo,
		requestRepo:     requestRepo,
		employeeRepo:    employeeRepo,
		levelRepo:       levelRepo,
		clientRepo:      clientRepo,
		notificationSvc: notificationSvc,
		emailSvc:        emailSvc,
	}
}

// CreateLeaveType implements leave.LeaveService. New types fan out a balance
// record to every employee currently on the level.
func (s *LeaveServiceImpl) CreateLeaveType(ctx context.Context, clientID string, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	if _, err := s.levelRepo.GetByID(ctx, req.LevelID, clientID); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	exists, err := s.typeRepo.ExistsByNameInLevel(ctx, req.Name, req.LevelID, clientID, nil)
	if err != nil {
		return leave.LeaveTypeResponse{}, fmt.Errorf("failed to check leave type name: %w", err)
	}
	if exists {
		return leave.LeaveTypeResponse{}, leave.ErrLeaveTypeNameExists
	}

	var created leave.LeaveType
	err = s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.typeRepo.Create(ctx, leave.LeaveType{
			ClientID:       clientID,
			LevelID:        req.LevelID,
			Name:           req.Name,
			DefaultBalance: req.DefaultBalance,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave type: %w", err)
		}

		employees, err := s.employeeRepo.GetByLevelID(ctx, req.LevelID, clientID)
		if err != nil {
			return fmt.Errorf("failed to list employees on level: %w", err)
		}

		balances := make([]leave.LeaveBalance, 0, len(employees))
		for _, emp := range employees {
			balances = append(balances, leave.LeaveBalance{
				ClientID:    clientID,
				EmployeeID:  emp.ID,
				LeaveTypeID: created.ID,
				Balance:     created.DefaultBalance,
			})
		}

		inserted, err := s.balanceRepo.BulkInsert(ctx, balances)
		if err != nil {
			return fmt.Errorf("failed to seed balances for new leave type: %w", err)
		}
		slog.Info("Seeded balances for new leave type",
			"leave_type_id", created.ID, "level_id", req.LevelID, "count", inserted)
		return nil
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	return leave.ToLeaveTypeResponse(created), nil
}

// UpdateLeaveType implements leave.LeaveService. Changing the default balance
// hard resets every existing balance record of the type.
func (s *LeaveServiceImpl) UpdateLeaveType(ctx context.Context, clientID string, req leave.UpdateLeaveTypeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	existing, err := s.typeRepo.GetByID(ctx, req.ID, clientID)
	if err != nil {
		return err
	}

	updated := existing
	if req.Name != nil {
		exists, err := s.typeRepo.ExistsByNameInLevel(ctx, *req.Name, existing.LevelID, clientID, &existing.ID)
		if err != nil {
			return fmt.Errorf("failed to check leave type name: %w", err)
		}
		if exists {
			return leave.ErrLeaveTypeNameExists
		}
		updated.Name = *req.Name
	}
	if req.DefaultBalance != nil {
		updated.DefaultBalance = *req.DefaultBalance
	}

	return s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.typeRepo.Update(ctx, updated); err != nil {
			return fmt.Errorf("failed to update leave type: %w", err)
		}

		if req.DefaultBalance != nil && *req.DefaultBalance != existing.DefaultBalance {
			reset, err := s.balanceRepo.ResetByLeaveType(ctx, existing.ID, clientID, *req.DefaultBalance)
			if err != nil {
				return fmt.Errorf("failed to reset balances for leave type: %w", err)
			}
			slog.Info("Reset balances after default change",
				"leave_type_id", existing.ID, "new_default", *req.DefaultBalance, "count", reset)
		}
		return nil
	})
}

// GetLeaveType implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveType(ctx context.Context, id, clientID string) (leave.LeaveTypeResponse, error) {
	leaveType, err := s.typeRepo.GetByID(ctx, id, clientID)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	return leave.ToLeaveTypeResponse(leaveType), nil
}

// ListLeaveTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveTypes(ctx context.Context, clientID string, levelID *string) ([]leave.LeaveTypeResponse, error) {
	var (
		types []leave.LeaveType
		err   error
	)
	if levelID != nil {
		types, err = s.typeRepo.GetByLevelID(ctx, *levelID, clientID)
	} else {
		types, err = s.typeRepo.GetByClientID(ctx, clientID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, leave.ToLeaveTypeResponse(t))
	}
	return responses, nil
}

// DeleteLeaveType implements leave.LeaveService. Balance records of the type
// are removed in the same transaction.
func (s *LeaveServiceImpl) DeleteLeaveType(ctx context.Context, id, clientID string) error {
	if _, err := s.typeRepo.GetByID(ctx, id, clientID); err != nil {
		return err
	}

	return s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		deleted, err := s.balanceRepo.DeleteByLeaveType(ctx, id, clientID)
		if err != nil {
			return fmt.Errorf("failed to delete balances for leave type: %w", err)
		}
		if err := s.typeRepo.Delete(ctx, id, clientID); err != nil {
			return err
		}
		slog.Info("Deleted leave type", "leave_type_id", id, "balances_removed", deleted)
		return nil
	})
}
