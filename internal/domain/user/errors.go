package user

import "errors"

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrEmailExists              = errors.New("email already registered")
	ErrAdminAccessRequired      = errors.New("admin access required")
	ErrSuperAdminAccessRequired = errors.New("super admin access required")
	ErrClientIDRequired         = errors.New("client id required")
)
