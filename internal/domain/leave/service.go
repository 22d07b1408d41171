package leave

import (
	"context"
)

type LeaveService interface {
	// Type
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	UpdateLeaveType(ctx context.Context, req UpdateLeaveTypeRequest) error
	GetLeaveType(ctx context.Context, id string) (LeaveTypeResponse, error)
	ListLeaveTypes(ctx context.Context, activeOnly bool) ([]LeaveTypeResponse, error)
	DeleteLeaveType(ctx context.Context, id string) error
	// Balance
	GetMyBalances(ctx context.Context, userID string, year int) ([]LeaveBalanceResponse, error)
	GetUserBalances(ctx context.Context, userID string, year int) ([]LeaveBalanceResponse, error)
	// Request
	SubmitLeaveRequest(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, req ActionLeaveRequest) (ActionLeaveResponse, error)
	RejectLeaveRequest(ctx context.Context, req ActionLeaveRequest) (ActionLeaveResponse, error)
	HoldLeaveRequest(ctx context.Context, req ActionLeaveRequest) (ActionLeaveResponse, error)
	GetLeaveRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	// GetTodayLeave returns the approved request covering today, or nil.
	GetTodayLeave(ctx context.Context, userID string) (*LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context, userID string, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)
	// Calendar
	GetTeamCalendar(ctx context.Context, month string) ([]CalendarEntry, error)
}
