package report

import "errors"

var (
	ErrInvalidYear = errors.New("year must be a four digit year")
)
