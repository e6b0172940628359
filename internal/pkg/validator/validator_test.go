package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   \t"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	for _, email := range []string{"ada@acme.test", "user.name+tag@domain.co", "a@b.cd"} {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range []string{"", "  ", "ada@", "@acme.test", "ada@.test", "ada@acme"} {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidDate(t *testing.T) {
	d, ok := IsValidDate("2026-09-07")
	assert.True(t, ok)
	assert.Equal(t, 2026, d.Year())

	for _, s := range []string{"", "2026-13-01", "2026-01-32", "2026/01/01", "07-09-2026"} {
		_, ok := IsValidDate(s)
		assert.False(t, ok, s)
	}
}

func TestIsInSlice(t *testing.T) {
	allowed := []string{"approve", "reject"}
	assert.True(t, IsInSlice("approve", allowed))
	assert.False(t, IsInSlice("escalate", allowed))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "start_date is required"},
		{Field: "duration", Message: "duration must be positive"},
	}
	assert.Equal(t, "start_date: start_date is required; duration: duration must be positive", errs.Error())
	assert.Equal(t, map[string]string{
		"start_date": "start_date is required",
		"duration":   "duration must be positive",
	}, errs.ToMap())
}
