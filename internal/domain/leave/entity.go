package leave

import "time"

// LeaveType is a named leave category anchored to one level of one client.
// Editing DefaultBalance cascades a hard reset to every balance record of the
// type; deleting the type deletes them.
type LeaveType struct {
	ID             string
	ClientID       string
	LevelID        string
	Name           string
	DefaultBalance int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields for responses.
	LevelName *string
}

// LeaveBalance is the remaining allowance of one employee for one leave type.
// Exactly one record exists per (employee, leave type) pair; the storage layer
// enforces this with a unique composite index.
type LeaveBalance struct {
	ID          string
	ClientID    string
	EmployeeID  string
	LeaveTypeID string
	Balance     int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields for responses.
	LeaveTypeName  *string
	DefaultBalance *int
}

// LeaveSummary is the balance snapshot captured on the leave record. It is
// written at request time and re-snapshotted at final approval so it reflects
// any balance drift between submission and confirmation.
type LeaveSummary struct {
	BalanceBeforeLeave int `json:"balance_before_leave"`
	BalanceAfterLeave  int `json:"balance_after_leave"`
	RemainingDays      int `json:"remaining_days"`
}

// Leave is a single leave request. LineManagerID and RelieverID are captured
// at creation time and not re-derived later.
type Leave struct {
	ID            string
	ClientID      string
	EmployeeID    string
	LineManagerID string
	RelieverID    string
	LeaveTypeID   string

	StartDate      time.Time
	ResumptionDate time.Time
	Duration       int
	Reason         string
	DocumentURL    *string

	Status          Status
	ApprovalCount   int
	ApprovalReason  *string
	RejectionReason *string
	ApprovedBy      *string
	RejectedBy      *string

	Summary LeaveSummary

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields for responses.
	EmployeeName    *string
	LineManagerName *string
	LeaveTypeName   *string
}
