package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// Create implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (client_id, employee_id, leave_type_id, balance)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, leave_type_id) DO NOTHING
		RETURNING id, client_id, employee_id, leave_type_id, balance, created_at, updated_at
	`

	var created leave.LeaveBalance
	err := q.QueryRow(ctx, query, balance.ClientID, balance.EmployeeID, balance.LeaveTypeID, balance.Balance).
		Scan(&created.ID, &created.ClientID, &created.EmployeeID, &created.LeaveTypeID, &created.Balance,
			&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		// No row comes back when the pair already exists; fetch it instead.
		if err == pgx.ErrNoRows {
			return r.GetByEmployeeAndType(ctx, balance.EmployeeID, balance.LeaveTypeID, balance.ClientID)
		}
		return leave.LeaveBalance{}, err
	}
	return created, nil
}

// GetByID implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByID(ctx context.Context, id, clientID string) (leave.LeaveBalance, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT lb.id, lb.client_id, lb.employee_id, lb.leave_type_id, lb.balance,
			   lb.created_at, lb.updated_at,
			   lt.name AS leave_type_name, lt.default_balance
		FROM leave_balances lb
		JOIN leave_types lt ON lb.leave_type_id = lt.id
		WHERE lb.id = $1 AND lb.client_id = $2
	`

	var found leave.LeaveBalance
	err := q.QueryRow(ctx, query, id, clientID).
		Scan(&found.ID, &found.ClientID, &found.EmployeeID, &found.LeaveTypeID, &found.Balance,
			&found.CreatedAt, &found.UpdatedAt, &found.LeaveTypeName, &found.DefaultBalance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return found, nil
}

// GetByEmployeeAndType implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID, clientID string) (leave.LeaveBalance, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT lb.id, lb.client_id, lb.employee_id, lb.leave_type_id, lb.balance,
			   lb.created_at, lb.updated_at,
			   lt.name AS leave_type_name, lt.default_balance
		FROM leave_balances lb
		JOIN leave_types lt ON lb.leave_type_id = lt.id
		WHERE lb.employee_id = $1 AND lb.leave_type_id = $2 AND lb.client_id = $3
	`

	var found leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, clientID).
		Scan(&found.ID, &found.ClientID, &found.EmployeeID, &found.LeaveTypeID, &found.Balance,
			&found.CreatedAt, &found.UpdatedAt, &found.LeaveTypeName, &found.DefaultBalance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return found, nil
}

// GetByEmployeeID implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID, clientID string) ([]leave.LeaveBalance, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT lb.id, lb.client_id, lb.employee_id, lb.leave_type_id, lb.balance,
			   lb.created_at, lb.updated_at,
			   lt.name AS leave_type_name, lt.default_balance
		FROM leave_balances lb
		JOIN leave_types lt ON lb.leave_type_id = lt.id
		WHERE lb.employee_id = $1 AND lb.client_id = $2
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, employeeID, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		var b leave.LeaveBalance
		if err := rows.Scan(&b.ID, &b.ClientID, &b.EmployeeID, &b.LeaveTypeID, &b.Balance,
			&b.CreatedAt, &b.UpdatedAt, &b.LeaveTypeName, &b.DefaultBalance); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// Reserve implements leave.LeaveBalanceRepository. The decrement is guarded
// by the balance check in the same statement, so two concurrent requests can
// never both reserve the last remaining days.
func (r *leaveBalanceRepositoryImpl) Reserve(ctx context.Context, balanceID string, days int) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET balance = balance - $1,
		    updated_at = NOW()
		WHERE id = $2
		AND balance >= $1
	`

	result, err := q.Exec(ctx, query, days, balanceID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}
	return nil
}

// Refund implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Refund(ctx context.Context, balanceID string, days int) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET balance = balance + $1,
		    updated_at = NOW()
		WHERE id = $2
	`

	_, err := q.Exec(ctx, query, days, balanceID)
	return err
}

// SetBalance implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) SetBalance(ctx context.Context, balanceID, clientID string, balance int) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET balance = $1,
		    updated_at = NOW()
		WHERE id = $2 AND client_id = $3
	`

	result, err := q.Exec(ctx, query, balance, balanceID, clientID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

// BulkInsert implements leave.LeaveBalanceRepository. Existing
// (employee, leave type) pairs are left untouched.
func (r *leaveBalanceRepositoryImpl) BulkInsert(ctx context.Context, balances []leave.LeaveBalance) (int64, error) {
	if len(balances) == 0 {
		return 0, nil
	}
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (client_id, employee_id, leave_type_id, balance)
		SELECT unnest($1::uuid[]), unnest($2::uuid[]), unnest($3::uuid[]), unnest($4::int[])
		ON CONFLICT (employee_id, leave_type_id) DO NOTHING
	`

	clientIDs := make([]string, len(balances))
	employeeIDs := make([]string, len(balances))
	leaveTypeIDs := make([]string, len(balances))
	amounts := make([]int, len(balances))
	for i, b := range balances {
		clientIDs[i] = b.ClientID
		employeeIDs[i] = b.EmployeeID
		leaveTypeIDs[i] = b.LeaveTypeID
		amounts[i] = b.Balance
	}

	result, err := q.Exec(ctx, query, clientIDs, employeeIDs, leaveTypeIDs, amounts)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// ResetByLeaveType implements leave.LeaveBalanceRepository. Every balance of
// the type is hard reset to the new default, discarding accrued usage.
func (r *leaveBalanceRepositoryImpl) ResetByLeaveType(ctx context.Context, leaveTypeID, clientID string, balance int) (int64, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET balance = $1,
		    updated_at = NOW()
		WHERE leave_type_id = $2 AND client_id = $3
	`

	result, err := q.Exec(ctx, query, balance, leaveTypeID, clientID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// DeleteByLeaveType implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) DeleteByLeaveType(ctx context.Context, leaveTypeID, clientID string) (int64, error) {
	q := database.GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx,
		`DELETE FROM leave_balances WHERE leave_type_id = $1 AND client_id = $2`,
		leaveTypeID, clientID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// DeleteByEmployeeID implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID, clientID string) (int64, error) {
	q := database.GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx,
		`DELETE FROM leave_balances WHERE employee_id = $1 AND client_id = $2`,
		employeeID, clientID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
