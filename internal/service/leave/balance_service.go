package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leavehq/leave-backend-go/internal/domain/leave"
)

// GetBalance implements leave.LeaveService.
func (s *LeaveServiceImpl) GetBalance(ctx context.Context, id, clientID string) (leave.BalanceResponse, error) {
	balance, err := s.balanceRepo.GetByID(ctx, id, clientID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.ToBalanceResponse(balance), nil
}

// GetEmployeeBalances implements leave.LeaveService. Leave types that do not
// apply to the employee's gender are filtered out of the listing.
func (s *LeaveServiceImpl) GetEmployeeBalances(ctx context.Context, employeeID, clientID string) ([]leave.BalanceResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID, clientID)
	if err != nil {
		return nil, err
	}

	balances, err := s.balanceRepo.GetByEmployeeID(ctx, employeeID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}

	visible := leave.FilterBalancesForGender(balances, emp.Gender)
	responses := make([]leave.BalanceResponse, 0, len(visible))
	for _, b := range visible {
		responses = append(responses, leave.ToBalanceResponse(b))
	}
	return responses, nil
}

// UpdateBalance implements leave.LeaveService. Manual correction by an admin;
// overwrites the remaining balance outright.
func (s *LeaveServiceImpl) UpdateBalance(ctx context.Context, clientID string, req leave.UpdateBalanceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.balanceRepo.SetBalance(ctx, req.BalanceID, clientID, req.Balance)
}

// ReseedForLevel implements leave.LeaveService. Drops every balance record of
// the employee and reseeds from the given level's catalog. A nil levelID
// leaves the employee with no balances. The reset is destructive on purpose:
// allowances follow the level.
func (s *LeaveServiceImpl) ReseedForLevel(ctx context.Context, employeeID, clientID string, levelID *string) error {
	return s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.reseedForLevel(ctx, employeeID, clientID, levelID)
	})
}

// reseedForLevel is the tx-scoped body of ReseedForLevel so the employee
// service can run it inside its own update transaction.
func (s *LeaveServiceImpl) reseedForLevel(ctx context.Context, employeeID, clientID string, levelID *string) error {
	deleted, err := s.balanceRepo.DeleteByEmployeeID(ctx, employeeID, clientID)
	if err != nil {
		return fmt.Errorf("failed to clear balances: %w", err)
	}

	if levelID == nil {
		slog.Info("Cleared balances for employee without level",
			"employee_id", employeeID, "removed", deleted)
		return nil
	}

	catalog, err := s.levelRepo.GetCatalog(ctx, *levelID, clientID)
	if err != nil {
		return fmt.Errorf("failed to load level catalog: %w", err)
	}

	balances := make([]leave.LeaveBalance, 0, len(catalog))
	for _, entry := range catalog {
		balances = append(balances, leave.LeaveBalance{
			ClientID:    clientID,
			EmployeeID:  employeeID,
			LeaveTypeID: entry.LeaveTypeID,
			Balance:     entry.DefaultBalance,
		})
	}

	inserted, err := s.balanceRepo.BulkInsert(ctx, balances)
	if err != nil {
		return fmt.Errorf("failed to reseed balances: %w", err)
	}

	slog.Info("Reseeded balances for level change",
		"employee_id", employeeID, "level_id", *levelID,
		"removed", deleted, "seeded", inserted)
	return nil
}

// DeleteBalancesForEmployee removes every balance record of an employee as
// part of the employee deletion cascade.
func (s *LeaveServiceImpl) DeleteBalancesForEmployee(ctx context.Context, employeeID, clientID string) error {
	deleted, err := s.balanceRepo.DeleteByEmployeeID(ctx, employeeID, clientID)
	if err != nil {
		return fmt.Errorf("failed to remove balances: %w", err)
	}
	slog.Info("Removed balances for deleted employee",
		"employee_id", employeeID, "count", deleted)
	return nil
}

// SeedForEmployee seeds balance records for a newly created employee from
// their level's catalog. Called by the employee service inside its creation
// transaction.
func (s *LeaveServiceImpl) SeedForEmployee(ctx context.Context, employeeID, clientID string, levelID *string) error {
	if levelID == nil {
		return nil
	}

	catalog, err := s.levelRepo.GetCatalog(ctx, *levelID, clientID)
	if err != nil {
		return fmt.Errorf("failed to load level catalog: %w", err)
	}

	balances := make([]leave.LeaveBalance, 0, len(catalog))
	for _, entry := range catalog {
		balances = append(balances, leave.LeaveBalance{
			ClientID:    clientID,
			EmployeeID:  employeeID,
			LeaveTypeID: entry.LeaveTypeID,
			Balance:     entry.DefaultBalance,
		})
	}

	if _, err := s.balanceRepo.BulkInsert(ctx, balances); err != nil {
		return fmt.Errorf("failed to seed balances: %w", err)
	}
	return nil
}
