package invitation

import "github.com/leavehq/leave-backend-go/internal/pkg/validator"

type AcceptRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r AcceptRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{Field: "token", Message: "Token is required"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Password must be at least 8 characters long"})
	}
	if r.Password != r.ConfirmPassword {
		errs = append(errs, validator.ValidationError{Field: "confirm_password", Message: "Passwords do not match"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type InvitationResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Email      string `json:"email"`
	Status     Status `json:"status"`
	ExpiresAt  string `json:"expires_at"`
}

func ToInvitationResponse(i Invitation) InvitationResponse {
	return InvitationResponse{
		ID:         i.ID,
		EmployeeID: i.EmployeeID,
		Email:      i.Email,
		Status:     i.Status,
		ExpiresAt:  i.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
