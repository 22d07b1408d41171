package report

import (
	"context"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
)

type ReportService interface {
	// ExportAttendanceCSV renders the matching attendance records as CSV.
	// Fields containing commas, quotes or newlines are quoted.
	ExportAttendanceCSV(ctx context.Context, filter attendance.Filter) ([]byte, error)
	GetLeaveAnalytics(ctx context.Context, year int) (LeaveAnalytics, error)
	GetEmployeeLeaveAnalytics(ctx context.Context, userID string, year int) (EmployeeLeaveAnalytics, error)
	// ListLeaveExport returns the matching leave requests for a JSON export.
	ListLeaveExport(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error)
	// ExportLeaveCSV renders the matching leave requests as CSV.
	ExportLeaveCSV(ctx context.Context, filter leave.LeaveRequestFilter) ([]byte, error)
	GetEmployeeDashboard(ctx context.Context, userID string) (EmployeeDashboard, error)
	GetManagerDashboard(ctx context.Context) (ManagerDashboard, error)
}
