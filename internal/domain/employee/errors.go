package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailExists        = errors.New("email already registered in this client")
	ErrLineManagerNotSet  = errors.New("line manager not set")
	ErrRelieverNotSet     = errors.New("reliever not set")
	ErrSelfAssignment     = errors.New("employee cannot be their own line manager or reliever")
	ErrEmployeeOnLeave    = errors.New("employee is already on leave")
	ErrRelieverOnLeave    = errors.New("reliever is on leave")
	ErrLineManagerOnLeave = errors.New("line manager is on leave")
)
