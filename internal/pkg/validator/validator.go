package validator

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

// ValidationError is a single field failure. DTOs collect them into
// ValidationErrors and return that from Validate().
type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Field + ": " + e.Message
	}
	return strings.Join(parts, "; ")
}

// ToMap flattens the errors for the response envelope's details field.
func (v ValidationErrors) ToMap() map[string]string {
	m := make(map[string]string, len(v))
	for _, e := range v {
		m[e.Field] = e.Message
	}
	return m
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsEmpty reports whether s is blank after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidDate parses a "YYYY-MM-DD" date string.
func IsValidDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	return t, err == nil
}

func IsInSlice(value string, allowed []string) bool {
	return slices.Contains(allowed, value)
}
