package employee

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Employee belongs to one client. LineManagerID and RelieverID are references
// to other employees of the same client; LevelID links the employee to the
// leave-type catalog their balances are seeded from.
type Employee struct {
	ID       string
	ClientID string

	StaffID    *string
	Firstname  string
	Middlename *string
	Surname    string
	Email      string
	Gender     Gender
	JobRole    *string
	Branch     *string
	Avatar     *string

	LevelID       *string
	LineManagerID *string
	RelieverID    *string

	IsOnLeave bool
	IsAdmin   bool
	IsActive  bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields for responses.
	LevelName *string
}

func (e Employee) FullName() string {
	name := e.Firstname
	if e.Middlename != nil && *e.Middlename != "" {
		name += " " + *e.Middlename
	}
	if e.Surname != "" {
		name += " " + e.Surname
	}
	return name
}
