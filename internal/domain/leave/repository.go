package leave

import "context"

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id, clientID string) (LeaveType, error)
	GetByLevelID(ctx context.Context, levelID, clientID string) ([]LeaveType, error)
	GetByClientID(ctx context.Context, clientID string) ([]LeaveType, error)
	ExistsByNameInLevel(ctx context.Context, name, levelID, clientID string, excludeID *string) (bool, error)
	Update(ctx context.Context, leaveType LeaveType) error
	Delete(ctx context.Context, id, clientID string) error
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	Create(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetByID(ctx context.Context, id, clientID string) (LeaveBalance, error)
	GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID, clientID string) (LeaveBalance, error)
	GetByEmployeeID(ctx context.Context, employeeID, clientID string) ([]LeaveBalance, error)

	// Reserve atomically decrements the balance by days when the remaining
	// balance covers it; returns ErrInsufficientBalance otherwise.
	Reserve(ctx context.Context, balanceID string, days int) error
	// Refund adds days back after a rejection.
	Refund(ctx context.Context, balanceID string, days int) error
	SetBalance(ctx context.Context, balanceID, clientID string, balance int) error

	// BulkInsert inserts the given records, silently skipping any
	// (employee, leave type) pair that already has one.
	BulkInsert(ctx context.Context, balances []LeaveBalance) (int64, error)
	ResetByLeaveType(ctx context.Context, leaveTypeID, clientID string, balance int) (int64, error)
	DeleteByLeaveType(ctx context.Context, leaveTypeID, clientID string) (int64, error)
	DeleteByEmployeeID(ctx context.Context, employeeID, clientID string) (int64, error)
}

// LeaveRequestRepository - interface for leaves table
type LeaveRequestRepository interface {
	Create(ctx context.Context, leave Leave) (Leave, error)
	GetByID(ctx context.Context, id, clientID string) (Leave, error)
	HasPendingByEmployee(ctx context.Context, employeeID, clientID string) (bool, error)
	List(ctx context.Context, clientID string, filter ListFilter) ([]Leave, int64, error)
	ListAllClients(ctx context.Context, filter ListFilter) ([]Leave, int64, error)
	Update(ctx context.Context, leave Leave) error
	Delete(ctx context.Context, id, clientID string) error
}
