package response

import (
	"errors"
	"net/http"

	"github.com/leavehq/leave-backend-go/internal/domain/auth"
	"github.com/leavehq/leave-backend-go/internal/domain/client"
	"github.com/leavehq/leave-backend-go/internal/domain/employee"
	"github.com/leavehq/leave-backend-go/internal/domain/invitation"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/domain/level"
	"github.com/leavehq/leave-backend-go/internal/domain/notification"
	"github.com/leavehq/leave-backend-go/internal/domain/report"
	"github.com/leavehq/leave-backend-go/internal/domain/user"
	"github.com/leavehq/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrGoogleAccountUnknown):
		Forbidden(w, "No account is linked to this Google email")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Client domain errors
	case errors.Is(err, client.ErrClientNotFound):
		NotFound(w, "Client not found")
	case errors.Is(err, client.ErrClientNameExists):
		Conflict(w, "Client name already exists")

	// Level domain errors
	case errors.Is(err, level.ErrLevelNotFound):
		NotFound(w, "Level not found")
	case errors.Is(err, level.ErrLevelNameExists):
		Conflict(w, "Level name already exists")
	case errors.Is(err, level.ErrLevelInUse):
		Conflict(w, "Level still has leave types attached")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this client")
	case errors.Is(err, employee.ErrSelfAssignment):
		BadRequest(w, "Employee cannot be their own line manager or reliever", nil)
	case errors.Is(err, employee.ErrEmployeeOnLeave):
		Conflict(w, "Employee is already on leave")
	case errors.Is(err, employee.ErrLineManagerNotSet):
		BadRequest(w, "Line manager not set", nil)
	case errors.Is(err, employee.ErrLineManagerOnLeave):
		Conflict(w, "Line manager is on leave")
	case errors.Is(err, employee.ErrRelieverNotSet):
		BadRequest(w, "Reliever not set", nil)
	case errors.Is(err, employee.ErrRelieverOnLeave):
		Conflict(w, "Reliever is on leave")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrLeaveTypeNameExists):
		Conflict(w, "Leave type name already exists on this level")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrPendingRequestExists):
		Conflict(w, "A pending leave request already exists")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, "Decision not allowed in the request's current state")
	case errors.Is(err, leave.ErrManagerApprovalRequired):
		Conflict(w, "Line manager approval is required first")
	case errors.Is(err, leave.ErrNotRequestApprover):
		Forbidden(w, "Only the assigned line manager can act on this request")
	case errors.Is(err, leave.ErrRejectionReasonRequired):
		BadRequest(w, "Rejection reason is required", nil)
	case errors.Is(err, leave.ErrEmployeeLevelNotAssigned):
		BadRequest(w, "Employee has no level assigned", nil)

	// Invitation domain errors
	case errors.Is(err, invitation.ErrInvitationNotFound):
		NotFound(w, "Invitation not found")
	case errors.Is(err, invitation.ErrInvitationExpired):
		Conflict(w, "Invitation has expired")
	case errors.Is(err, invitation.ErrAlreadyAccepted):
		Conflict(w, "Invitation has already been accepted")
	case errors.Is(err, invitation.ErrInvitationRevoked):
		Conflict(w, "Invitation has been revoked")
	case errors.Is(err, invitation.ErrPendingExists):
		Conflict(w, "A pending invitation already exists for this employee")

	// Notification / report domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, report.ErrInvalidYear):
		BadRequest(w, "Year must be a four digit year", nil)

	// Access control
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrSuperAdminAccessRequired):
		Forbidden(w, "Super admin access required")
	case errors.Is(err, user.ErrClientIDRequired):
		Forbidden(w, "Client scope required")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
