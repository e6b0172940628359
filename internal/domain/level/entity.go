package level

import "time"

// Level is an organizational tier. Its catalog of leave types determines the
// balance records an employee on the level is entitled to.
type Level struct {
	ID          string
	ClientID    string
	Name        string
	Description *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CatalogEntry is a leave type as seen from a level's catalog, carrying just
// what the balance reseed needs.
type CatalogEntry struct {
	LeaveTypeID    string
	Name           string
	DefaultBalance int
}
