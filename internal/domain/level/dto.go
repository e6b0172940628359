package level

import "github.com/leavehq/leave-backend-go/internal/pkg/validator"

type CreateLevelRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r CreateLevelRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLevelRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r UpdateLevelRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "level_id", Message: "level_id is required"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LevelResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func ToLevelResponse(l Level) LevelResponse {
	return LevelResponse{ID: l.ID, Name: l.Name, Description: l.Description}
}
