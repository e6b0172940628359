package leave

import "context"

// LeaveService is the leave lifecycle facade: type catalog maintenance with
// balance cascades, the balance ledger, and the request state machine.
type LeaveService interface {
	// Type catalog
	CreateLeaveType(ctx context.Context, clientID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	UpdateLeaveType(ctx context.Context, clientID string, req UpdateLeaveTypeRequest) error
	GetLeaveType(ctx context.Context, id, clientID string) (LeaveTypeResponse, error)
	ListLeaveTypes(ctx context.Context, clientID string, levelID *string) ([]LeaveTypeResponse, error)
	DeleteLeaveType(ctx context.Context, id, clientID string) error

	// Balance ledger
	GetBalance(ctx context.Context, id, clientID string) (BalanceResponse, error)
	GetEmployeeBalances(ctx context.Context, employeeID, clientID string) ([]BalanceResponse, error)
	UpdateBalance(ctx context.Context, clientID string, req UpdateBalanceRequest) error
	ReseedForLevel(ctx context.Context, employeeID, clientID string, levelID *string) error

	// Requests
	CreateLeaveRequest(ctx context.Context, employeeID, clientID string, req CreateLeaveRequest) (LeaveResponse, error)
	DecideAsLineManager(ctx context.Context, actorEmployeeID, clientID string, req DecideLeaveRequest) error
	DecideAsClientAdmin(ctx context.Context, actorEmployeeID, clientID string, req DecideLeaveRequest) error
	DecideAsSuperAdmin(ctx context.Context, actorUserID string, req DecideLeaveRequest) error
	GetLeaveRequest(ctx context.Context, id, clientID string) (LeaveResponse, error)
	ListLeaveRequests(ctx context.Context, clientID string, filter ListFilter) (ListLeaveResponse, error)
	ListAllLeaveRequests(ctx context.Context, filter ListFilter) (ListLeaveResponse, error)
	DeleteLeaveRequest(ctx context.Context, id, clientID string) error
}
