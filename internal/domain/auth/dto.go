package auth

import "github.com/leavehq/leave-backend-go/internal/pkg/validator"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "Valid email is required"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Password is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r ForgotPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "Valid email is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ResetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r ResetPasswordRequest) Validate() error {
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

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	TokenType   string `json:"token_type"`
}

type LoginResponse struct {
	TokenResponse
	UserID     string  `json:"user_id"`
	EmployeeID *string `json:"employee_id,omitempty"`
	ClientID   *string `json:"client_id,omitempty"`
	Role       string  `json:"role"`
}
