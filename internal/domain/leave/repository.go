package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	GetByCode(ctx context.Context, code string) (LeaveType, error)
	List(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	Update(ctx context.Context, req UpdateLeaveTypeRequest) error
	Delete(ctx context.Context, id string) error
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	Create(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetByUserTypeYear(ctx context.Context, userID, leaveTypeID string, year int) (LeaveBalance, error)
	GetByUserYear(ctx context.Context, userID string, year int) ([]LeaveBalance, error)
	// Save persists Used and Pending. The update is conditional on the
	// ledger staying non-negative and reports ErrInvalidState otherwise.
	Save(ctx context.Context, balance LeaveBalance) error
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByUser(ctx context.Context, userID string, filter LeaveRequestFilter) ([]LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)
	// ListOverlapping returns the user's pending, on-hold and approved
	// requests that share at least one day with the given range.
	ListOverlapping(ctx context.Context, userID string, start, end time.Time) ([]LeaveRequest, error)
	// ListDepartmentApprovedInRange returns approved requests from other
	// members of the department that intersect the range.
	ListDepartmentApprovedInRange(ctx context.Context, department, excludeUserID string, start, end time.Time) ([]LeaveRequest, error)
	ListApprovedInRange(ctx context.Context, start, end time.Time) ([]LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, approverID string, remarks *string, actionAt time.Time) error
}
