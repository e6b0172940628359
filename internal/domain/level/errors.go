package level

import "errors"

var (
	ErrLevelNotFound   = errors.New("level not found")
	ErrLevelNameExists = errors.New("level name already exists")
	ErrLevelInUse      = errors.New("level still has leave types attached")
)
