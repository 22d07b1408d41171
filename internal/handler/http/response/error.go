package response

import (
	"errors"
	"net/http"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/auth"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/notification"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
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
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeCodeExists):
		Conflict(w, "Leave type code already exists")
	case errors.Is(err, leave.ErrLeaveTypeInactive):
		BadRequest(w, "Leave type is inactive", nil)
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrExceedsMaxContinuousDays):
		BadRequest(w, "Request exceeds the maximum continuous days for this leave type", nil)
	case errors.Is(err, leave.ErrHalfDayNotAllowed):
		BadRequest(w, "Half-day is not allowed for this leave type", nil)
	case errors.Is(err, leave.ErrHalfDaySpansMultipleDays):
		BadRequest(w, "A half-day request must cover a single date", nil)
	case errors.Is(err, leave.ErrAttachmentRequired):
		BadRequest(w, "This leave type requires an attachment", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, "Leave request cannot move to the requested status")
	case errors.Is(err, leave.ErrRemarksRequired):
		BadRequest(w, "Remarks are required when rejecting a request", nil)
	case errors.Is(err, leave.ErrInvalidState):
		Conflict(w, "Leave balance changed, please retry")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No check-in recorded today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this notification")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
