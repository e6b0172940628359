package leave

import (
	"time"

	"github.com/leavehq/leave-backend-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	LevelID        string `json:"level_id"`
	Name           string `json:"name"`
	DefaultBalance int    `json:"default_balance"`
}

func (r CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LevelID) {
		errs = append(errs, validator.ValidationError{Field: "level_id", Message: "level_id is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
	}
	if r.DefaultBalance < 0 {
		errs = append(errs, validator.ValidationError{Field: "default_balance", Message: "default_balance must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveTypeRequest struct {
	ID             string  `json:"-"`
	Name           *string `json:"name"`
	DefaultBalance *int    `json:"default_balance"`
}

func (r UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "leave_type_id is required"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.DefaultBalance != nil && *r.DefaultBalance < 0 {
		errs = append(errs, validator.ValidationError{Field: "default_balance", Message: "default_balance must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateLeaveRequest struct {
	LeaveTypeID    string  `json:"leave_type_id"`
	StartDate      string  `json:"start_date"`
	ResumptionDate string  `json:"resumption_date"`
	Duration       int     `json:"duration"`
	Reason         string  `json:"reason"`
	DocumentURL    *string `json:"document_url"`
}

func (r CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "leave_type_id is required"})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be a valid date (YYYY-MM-DD)"})
	}
	resumption, resumptionOK := validator.IsValidDate(r.ResumptionDate)
	if !resumptionOK {
		errs = append(errs, validator.ValidationError{Field: "resumption_date", Message: "resumption_date must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && resumptionOK && !resumption.After(start) {
		errs = append(errs, validator.ValidationError{Field: "resumption_date", Message: "resumption_date must be after start_date"})
	}
	if r.Duration < 1 {
		errs = append(errs, validator.ValidationError{Field: "duration", Message: "duration must be at least 1 day"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Dates returns the parsed start and resumption dates. Malformed input is an
// error here too, so callers never work with zero dates silently.
func (r CreateLeaveRequest) Dates() (time.Time, time.Time, error) {
	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		return time.Time{}, time.Time{}, validator.ValidationErrors{
			{Field: "start_date", Message: "start_date must be a valid date (YYYY-MM-DD)"},
		}
	}
	resumption, ok := validator.IsValidDate(r.ResumptionDate)
	if !ok {
		return time.Time{}, time.Time{}, validator.ValidationErrors{
			{Field: "resumption_date", Message: "resumption_date must be a valid date (YYYY-MM-DD)"},
		}
	}
	return start, resumption, nil
}

type DecideLeaveRequest struct {
	LeaveID  string  `json:"-"`
	Decision string  `json:"decision"`
	Reason   *string `json:"reason"`
}

func (r DecideLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveID) {
		errs = append(errs, validator.ValidationError{Field: "leave_id", Message: "leave_id is required"})
	}
	if r.Decision != string(DecisionApprove) && r.Decision != string(DecisionReject) {
		errs = append(errs, validator.ValidationError{Field: "decision", Message: "decision must be approve or reject"})
	}
	if r.Decision == string(DecisionReject) && (r.Reason == nil || validator.IsEmpty(*r.Reason)) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required when rejecting"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateBalanceRequest struct {
	BalanceID string `json:"-"`
	Balance   int    `json:"balance"`
}

func (r UpdateBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BalanceID) {
		errs = append(errs, validator.ValidationError{Field: "balance_id", Message: "balance_id is required"})
	}
	if r.Balance < 0 {
		errs = append(errs, validator.ValidationError{Field: "balance", Message: "balance must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListFilter narrows and paginates leave request listings.
type ListFilter struct {
	Status        *Status
	EmployeeID    *string
	LineManagerID *string
	Page          int
	Limit         int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type LeaveTypeResponse struct {
	ID             string `json:"id"`
	LevelID        string `json:"level_id"`
	LevelName      string `json:"level_name,omitempty"`
	Name           string `json:"name"`
	DefaultBalance int    `json:"default_balance"`
}

func ToLeaveTypeResponse(t LeaveType) LeaveTypeResponse {
	resp := LeaveTypeResponse{
		ID:             t.ID,
		LevelID:        t.LevelID,
		Name:           t.Name,
		DefaultBalance: t.DefaultBalance,
	}
	if t.LevelName != nil {
		resp.LevelName = *t.LevelName
	}
	return resp
}

type BalanceResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	LeaveTypeID    string `json:"leave_type_id"`
	LeaveTypeName  string `json:"leave_type_name,omitempty"`
	Balance        int    `json:"balance"`
	DefaultBalance int    `json:"default_balance,omitempty"`
}

func ToBalanceResponse(b LeaveBalance) BalanceResponse {
	resp := BalanceResponse{
		ID:          b.ID,
		EmployeeID:  b.EmployeeID,
		LeaveTypeID: b.LeaveTypeID,
		Balance:     b.Balance,
	}
	if b.LeaveTypeName != nil {
		resp.LeaveTypeName = *b.LeaveTypeName
	}
	if b.DefaultBalance != nil {
		resp.DefaultBalance = *b.DefaultBalance
	}
	return resp
}

type LeaveResponse struct {
	ID              string       `json:"id"`
	EmployeeID      string       `json:"employee_id"`
	EmployeeName    string       `json:"employee_name,omitempty"`
	LineManagerID   string       `json:"line_manager_id"`
	LineManagerName string       `json:"line_manager_name,omitempty"`
	RelieverID      string       `json:"reliever_id"`
	LeaveTypeID     string       `json:"leave_type_id"`
	LeaveTypeName   string       `json:"leave_type_name,omitempty"`
	StartDate       string       `json:"start_date"`
	ResumptionDate  string       `json:"resumption_date"`
	Duration        int          `json:"duration"`
	Reason          string       `json:"reason"`
	DocumentURL     *string      `json:"document_url,omitempty"`
	Status          Status       `json:"status"`
	ApprovalCount   int          `json:"approval_count"`
	ApprovalReason  *string      `json:"approval_reason,omitempty"`
	RejectionReason *string      `json:"rejection_reason,omitempty"`
	Summary         LeaveSummary `json:"leave_summary"`
	CreatedAt       string       `json:"created_at"`
}

func ToLeaveResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID,
		EmployeeID:      l.EmployeeID,
		LineManagerID:   l.LineManagerID,
		RelieverID:      l.RelieverID,
		LeaveTypeID:     l.LeaveTypeID,
		StartDate:       l.StartDate.Format("2006-01-02"),
		ResumptionDate:  l.ResumptionDate.Format("2006-01-02"),
		Duration:        l.Duration,
		Reason:          l.Reason,
		DocumentURL:     l.DocumentURL,
		Status:          l.Status,
		ApprovalCount:   l.ApprovalCount,
		ApprovalReason:  l.ApprovalReason,
		RejectionReason: l.RejectionReason,
		Summary:         l.Summary,
		CreatedAt:       l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if l.EmployeeName != nil {
		resp.EmployeeName = *l.EmployeeName
	}
	if l.LineManagerName != nil {
		resp.LineManagerName = *l.LineManagerName
	}
	if l.LeaveTypeName != nil {
		resp.LeaveTypeName = *l.LeaveTypeName
	}
	return resp
}

type ListLeaveResponse struct {
	Items      []LeaveResponse `json:"items"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalItems int64           `json:"total_items"`
	TotalPages int             `json:"total_pages"`
}
