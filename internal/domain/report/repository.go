package report

import (
	"context"
	"time"
)

// Repository defines the aggregate queries backing analytics and dashboards
type Repository interface {
	LeaveUsageByType(ctx context.Context, year int) ([]LeaveTypeUsage, error)
	LeaveUsageByMonth(ctx context.Context, year int) ([]MonthlyLeaveTrend, error)
	LeaveUsageByDepartment(ctx context.Context, year int) ([]DepartmentLeaveUsage, error)
	UserLeaveSummary(ctx context.Context, userID string, year int) (EmployeeLeaveSummary, error)
	UserLeaveUsageByType(ctx context.Context, userID string, year int) ([]LeaveTypeUsage, error)
	UserLeaveUsageByMonth(ctx context.Context, userID string, year int) ([]MonthlyLeaveTrend, error)
	RequestStatusCounts(ctx context.Context, userID string) (StatusCounts, error)
	CountRequestsByStatus(ctx context.Context, status string) (int, error)
	AttendanceStatusCountsOn(ctx context.Context, date time.Time) (present, late, onLeave int, err error)
	// AbsentUsersOn lists users with no attendance record and no approved
	// leave on the given date.
	AbsentUsersOn(ctx context.Context, date time.Time) ([]string, error)
	AverageWorkedHours(ctx context.Context, from, to time.Time) (float64, error)
}
