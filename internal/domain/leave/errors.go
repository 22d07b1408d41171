package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveTypeCodeExists  = errors.New("leave type code already exists")
	ErrLeaveTypeInactive    = errors.New("leave type is not active")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrBalanceNotFound      = errors.New("leave balance not found")

	ErrDateRange                = errors.New("end date must not be before start date")
	ErrOverlappingLeave         = errors.New("request overlaps an existing leave")
	ErrExceedsMaxContinuousDays = errors.New("request exceeds the maximum continuous days for this leave type")
	ErrHalfDayNotAllowed        = errors.New("half-day requests are not allowed for this leave type")
	ErrHalfDaySpansMultipleDays = errors.New("half-day requests must start and end on the same date")
	ErrAttachmentRequired       = errors.New("this leave type requires a supporting attachment")
	ErrInsufficientBalance      = errors.New("insufficient leave balance")

	ErrInvalidTransition = errors.New("leave request cannot change to the requested status")
	ErrRemarksRequired   = errors.New("remarks are required when rejecting a request")
	ErrInvalidState      = errors.New("leave balance would become inconsistent")
)
