package leave

import "errors"

var (
	ErrLeaveNotFound     = errors.New("leave request not found")
	ErrLeaveTypeNotFound = errors.New("leave type not found")
	ErrBalanceNotFound   = errors.New("leave balance not found")

	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrPendingRequestExists = errors.New("employee already has a pending leave request")

	ErrAlreadyProcessed        = errors.New("leave request has already been processed")
	ErrInvalidTransition       = errors.New("decision is not allowed in the current state")
	ErrManagerApprovalRequired = errors.New("line manager approval is required first")

	ErrNotRequestApprover       = errors.New("only the assigned line manager can decide this request")
	ErrRejectionReasonRequired  = errors.New("a reason is required when rejecting")
	ErrLeaveTypeNameExists      = errors.New("leave type name already exists for this level")
	ErrInvalidDateRange         = errors.New("resumption date must be after the start date")
	ErrInvalidDuration          = errors.New("duration must be at least one day")
	ErrNegativeDefaultBalance   = errors.New("default balance cannot be negative")
	ErrEmployeeLevelNotAssigned = errors.New("employee has no level assigned")
)
