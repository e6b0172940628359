package employee

import "github.com/leavehq/leave-backend-go/internal/pkg/validator"

type CreateEmployeeRequest struct {
	StaffID       *string `json:"staff_id"`
	Firstname     string  `json:"firstname"`
	Middlename    *string `json:"middlename"`
	Surname       string  `json:"surname"`
	Email         string  `json:"email"`
	Gender        string  `json:"gender"`
	JobRole       *string `json:"job_role"`
	Branch        *string `json:"branch"`
	LevelID       *string `json:"level_id"`
	LineManagerID *string `json:"line_manager_id"`
	RelieverID    *string `json:"reliever_id"`
	IsAdmin       bool    `json:"is_admin"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Firstname) {
		errs = append(errs, validator.ValidationError{Field: "firstname", Message: "Firstname is required"})
	}
	if validator.IsEmpty(r.Surname) {
		errs = append(errs, validator.ValidationError{Field: "surname", Message: "Surname is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "Valid email is required"})
	}
	if !validator.IsInSlice(r.Gender, []string{string(GenderMale), string(GenderFemale)}) {
		errs = append(errs, validator.ValidationError{Field: "gender", Message: "Gender must be male or female"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest is a partial update. A non-nil LevelID that differs
// from the stored one triggers the balance reseed cascade.
type UpdateEmployeeRequest struct {
	ID            string  `json:"-"`
	StaffID       *string `json:"staff_id"`
	Firstname     *string `json:"firstname"`
	Middlename    *string `json:"middlename"`
	Surname       *string `json:"surname"`
	JobRole       *string `json:"job_role"`
	Branch        *string `json:"branch"`
	Avatar        *string `json:"avatar"`
	LevelID       *string `json:"level_id"`
	LineManagerID *string `json:"line_manager_id"`
	RelieverID    *string `json:"reliever_id"`
	IsActive      *bool   `json:"is_active"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.LineManagerID != nil && *r.LineManagerID == r.ID {
		errs = append(errs, validator.ValidationError{Field: "line_manager_id", Message: "Employee cannot be their own line manager"})
	}
	if r.RelieverID != nil && *r.RelieverID == r.ID {
		errs = append(errs, validator.ValidationError{Field: "reliever_id", Message: "Employee cannot be their own reliever"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	ClientID      string  `json:"client_id"`
	StaffID       *string `json:"staff_id,omitempty"`
	Firstname     string  `json:"firstname"`
	Middlename    *string `json:"middlename,omitempty"`
	Surname       string  `json:"surname"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Gender        Gender  `json:"gender"`
	JobRole       *string `json:"job_role,omitempty"`
	Branch        *string `json:"branch,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
	LevelID       *string `json:"level_id,omitempty"`
	LevelName     *string `json:"level_name,omitempty"`
	LineManagerID *string `json:"line_manager_id,omitempty"`
	RelieverID    *string `json:"reliever_id,omitempty"`
	IsOnLeave     bool    `json:"is_on_leave"`
	IsAdmin       bool    `json:"is_admin"`
	IsActive      bool    `json:"is_active"`
}

func ToEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		ClientID:      e.ClientID,
		StaffID:       e.StaffID,
		Firstname:     e.Firstname,
		Middlename:    e.Middlename,
		Surname:       e.Surname,
		FullName:      e.FullName(),
		Email:         e.Email,
		Gender:        e.Gender,
		JobRole:       e.JobRole,
		Branch:        e.Branch,
		Avatar:        e.Avatar,
		LevelID:       e.LevelID,
		LevelName:     e.LevelName,
		LineManagerID: e.LineManagerID,
		RelieverID:    e.RelieverID,
		IsOnLeave:     e.IsOnLeave,
		IsAdmin:       e.IsAdmin,
		IsActive:      e.IsActive,
	}
}
