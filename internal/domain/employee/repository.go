package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id, clientID string) (Employee, error)
	GetByEmail(ctx context.Context, clientID, email string) (Employee, error)
	GetByClientID(ctx context.Context, clientID string) ([]Employee, error)
	GetByLevelID(ctx context.Context, levelID, clientID string) ([]Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest, clientID string) error
	Delete(ctx context.Context, id, clientID string) error

	SetOnLeave(ctx context.Context, id string, onLeave bool) error

	// NullifyReferences clears the employee from other employees'
	// line_manager_id and reliever_id columns. Used on employee deletion.
	NullifyReferences(ctx context.Context, id, clientID string) error

	// ClearResumedLeaveFlags resets is_on_leave for employees whose approved
	// leave resumption date has passed. Returns the number of rows cleared.
	ClearResumedLeaveFlags(ctx context.Context, now time.Time) (int64, error)
}
