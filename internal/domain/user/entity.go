package user

import "time"

type Role string

const (
	RoleSuperAdmin  Role = "superAdmin"
	RoleClientAdmin Role = "clientAdmin"
	RoleLineManager Role = "lineManager"
	RoleEmployee    Role = "employee"
)

// User is a login identity. Employees get a user record when they accept an
// invitation; super admins exist without a client scope.
type User struct {
	ID              string
	ClientID        *string
	EmployeeID      *string
	Email           string
	PasswordHash    string
	Role            Role
	IsEmailVerified bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
