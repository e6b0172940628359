package client

import "github.com/leavehq/leave-backend-go/internal/pkg/validator"

type CreateClientRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Logo  *string `json:"logo"`
	Color *string `json:"color"`
}

func (r CreateClientRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "Valid email is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateClientRequest struct {
	ID    string  `json:"-"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Logo  *string `json:"logo"`
	Color *string `json:"color"`
}

type ClientResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Logo  *string `json:"logo,omitempty"`
	Color *string `json:"color,omitempty"`
}

func ToClientResponse(c Client) ClientResponse {
	return ClientResponse{ID: c.ID, Name: c.Name, Email: c.Email, Logo: c.Logo, Color: c.Color}
}
