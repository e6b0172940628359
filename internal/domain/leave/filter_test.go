package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leavehq/leave-backend-go/internal/domain/employee"
)

func TestVisibleToGender(t *testing.T) {
	tests := []struct {
		typeName string
		gender   employee.Gender
		want     bool
	}{
		{"Annual", employee.GenderMale, true},
		{"Annual", employee.GenderFemale, true},
		{"Maternity", employee.GenderMale, false},
		{"Maternity", employee.GenderFemale, true},
		{"Paternity", employee.GenderMale, true},
		{"Paternity", employee.GenderFemale, false},
		{"maternity leave", employee.GenderMale, false},
		{"Exam Leave", employee.GenderMale, false},
		{"Exam Leave", employee.GenderFemale, false},
		{"Pre-exam study", employee.GenderFemale, false},
	}

	for _, tt := range tests {
		got := VisibleToGender(tt.typeName, tt.gender)
		assert.Equal(t, tt.want, got, "VisibleToGender(%q, %s)", tt.typeName, tt.gender)
	}
}

func TestFilterBalancesForGender(t *testing.T) {
	name := func(s string) *string { return &s }
	balances := []LeaveBalance{
		{ID: "1", LeaveTypeName: name("Annual")},
		{ID: "2", LeaveTypeName: name("Maternity")},
		{ID: "3", LeaveTypeName: name("Paternity")},
		{ID: "4", LeaveTypeName: name("Exam")},
		{ID: "5"}, // no joined type name
	}

	male := FilterBalancesForGender(balances, employee.GenderMale)
	ids := make([]string, 0, len(male))
	for _, b := range male {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"1", "3", "5"}, ids)

	female := FilterBalancesForGender(balances, employee.GenderFemale)
	ids = ids[:0]
	for _, b := range female {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"1", "2", "5"}, ids)
}
