package employee

import "context"

// EmployeeService defines business logic for employee operations.
type EmployeeService interface {
	// CreateEmployee creates an employee, seeds balances from their level's
	// catalog, and sends an invitation email.
	CreateEmployee(ctx context.Context, clientID string, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee applies a partial update. A level change reseeds the
	// employee's leave balances from the new level's catalog.
	UpdateEmployee(ctx context.Context, clientID string, req UpdateEmployeeRequest) (EmployeeResponse, error)

	GetEmployee(ctx context.Context, id, clientID string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, clientID string) ([]EmployeeResponse, error)

	// DeleteEmployee removes the employee, their balance records, and nulls
	// them out wherever they serve as line manager or reliever.
	DeleteEmployee(ctx context.Context, id, clientID string) error
}
