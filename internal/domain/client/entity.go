package client

import "time"

// Client is a tenant organization. Every other entity in the system belongs
// to exactly one client and is always queried with the client id as a filter.
type Client struct {
	ID    string
	Name  string
	Email string

	// Branding used in transactional emails.
	Logo  *string
	Color *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
