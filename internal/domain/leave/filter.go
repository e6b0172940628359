package leave

import (
	"strings"

	"github.com/leavehq/leave-backend-go/internal/domain/employee"
)

// VisibleToGender reports whether a leave type should be shown to an employee
// of the given gender. Maternity types are hidden from males, paternity types
// from females, and anything exam-related from everyone.
func VisibleToGender(typeName string, gender employee.Gender) bool {
	name := strings.ToLower(typeName)

	if strings.Contains(name, "exam") {
		return false
	}
	if gender == employee.GenderMale && strings.Contains(name, "maternity") {
		return false
	}
	if gender == employee.GenderFemale && strings.Contains(name, "paternity") {
		return false
	}
	return true
}

// FilterBalancesForGender drops balances whose leave type is not visible to
// the employee's gender. Balances without a joined type name pass through.
func FilterBalancesForGender(balances []LeaveBalance, gender employee.Gender) []LeaveBalance {
	filtered := make([]LeaveBalance, 0, len(balances))
	for _, b := range balances {
		if b.LeaveTypeName != nil && !VisibleToGender(*b.LeaveTypeName, gender) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}
