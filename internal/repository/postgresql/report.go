package postgresql

import (
	"context"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/report"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepositoryImpl{db: db}
}

// LeaveUsageByType implements report.Repository.
func (r *reportRepositoryImpl) LeaveUsageByType(ctx context.Context, year int) ([]report.LeaveTypeUsage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.name, COALESCE(SUM(r.total_days), 0), COUNT(r.id)
		FROM leave_types t
		LEFT JOIN leave_requests r ON r.leave_type_id = t.id
			AND r.status = 'approved'
			AND EXTRACT(YEAR FROM r.start_date) = $1
		GROUP BY t.id, t.name
		ORDER BY t.name
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usages []report.LeaveTypeUsage
	for rows.Next() {
		var u report.LeaveTypeUsage
		if err := rows.Scan(&u.LeaveTypeID, &u.Name, &u.TotalDays, &u.RequestCount); err != nil {
			return nil, err
		}
		usages = append(usages, u)
	}

	return usages, rows.Err()
}

// LeaveUsageByMonth implements report.Repository.
func (r *reportRepositoryImpl) LeaveUsageByMonth(ctx context.Context, year int) ([]report.MonthlyLeaveTrend, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXTRACT(MONTH FROM start_date)::int AS month,
			COALESCE(SUM(total_days), 0), COUNT(id)
		FROM leave_requests
		WHERE status = 'approved' AND EXTRACT(YEAR FROM start_date) = $1
		GROUP BY month
		ORDER BY month
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []report.MonthlyLeaveTrend
	for rows.Next() {
		var t report.MonthlyLeaveTrend
		if err := rows.Scan(&t.Month, &t.TotalDays, &t.RequestCount); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}

	return trends, rows.Err()
}

// LeaveUsageByDepartment implements report.Repository.
func (r *reportRepositoryImpl) LeaveUsageByDepartment(ctx context.Context, year int) ([]report.DepartmentLeaveUsage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.department, COALESCE(SUM(r.total_days), 0), COUNT(r.id)
		FROM leave_requests r
		JOIN users u ON u.id = r.user_id
		WHERE r.status = 'approved' AND EXTRACT(YEAR FROM r.start_date) = $1
		GROUP BY u.department
		ORDER BY u.department
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usages []report.DepartmentLeaveUsage
	for rows.Next() {
		var u report.DepartmentLeaveUsage
		if err := rows.Scan(&u.Department, &u.TotalDays, &u.RequestCount); err != nil {
			return nil, err
		}
		usages = append(usages, u)
	}

	return usages, rows.Err()
}

// RequestStatusCounts implements report.Repository.
func (r *reportRepositoryImpl) RequestStatusCounts(ctx context.Context, userID string) (report.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE status = 'on_hold')
		FROM leave_requests
		WHERE user_id = $1
	`

	var counts report.StatusCounts
	err := q.QueryRow(ctx, query, userID).Scan(&counts.Pending, &counts.Approved, &counts.Rejected, &counts.OnHold)
	if err != nil {
		return report.StatusCounts{}, err
	}

	return counts, nil
}

// UserLeaveSummary implements report.Repository.
func (r *reportRepositoryImpl) UserLeaveSummary(ctx context.Context, userID string, year int) (report.EmployeeLeaveSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE status = 'on_hold'),
			COALESCE(SUM(total_days) FILTER (WHERE status = 'approved'), 0),
			COUNT(*) FILTER (WHERE status = 'approved' AND half_day)
		FROM leave_requests
		WHERE user_id = $1 AND EXTRACT(YEAR FROM start_date) = $2
	`

	var s report.EmployeeLeaveSummary
	err := q.QueryRow(ctx, query, userID, year).Scan(
		&s.TotalRequests, &s.Approved, &s.Pending, &s.Rejected, &s.OnHold, &s.DaysTaken, &s.HalfDays)
	if err != nil {
		return report.EmployeeLeaveSummary{}, err
	}

	return s, nil
}

// UserLeaveUsageByType implements report.Repository.
func (r *reportRepositoryImpl) UserLeaveUsageByType(ctx context.Context, userID string, year int) ([]report.LeaveTypeUsage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.name, COALESCE(SUM(r.total_days), 0), COUNT(r.id)
		FROM leave_requests r
		JOIN leave_types t ON t.id = r.leave_type_id
		WHERE r.user_id = $1 AND r.status = 'approved'
			AND EXTRACT(YEAR FROM r.start_date) = $2
		GROUP BY t.id, t.name
		ORDER BY t.name
	`

	rows, err := q.Query(ctx, query, userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usages []report.LeaveTypeUsage
	for rows.Next() {
		var u report.LeaveTypeUsage
		if err := rows.Scan(&u.LeaveTypeID, &u.Name, &u.TotalDays, &u.RequestCount); err != nil {
			return nil, err
		}
		usages = append(usages, u)
	}

	return usages, rows.Err()
}

// UserLeaveUsageByMonth implements report.Repository.
func (r *reportRepositoryImpl) UserLeaveUsageByMonth(ctx context.Context, userID string, year int) ([]report.MonthlyLeaveTrend, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXTRACT(MONTH FROM start_date)::int AS month,
			COALESCE(SUM(total_days), 0), COUNT(id)
		FROM leave_requests
		WHERE user_id = $1 AND status = 'approved' AND EXTRACT(YEAR FROM start_date) = $2
		GROUP BY month
		ORDER BY month
	`

	rows, err := q.Query(ctx, query, userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []report.MonthlyLeaveTrend
	for rows.Next() {
		var t report.MonthlyLeaveTrend
		if err := rows.Scan(&t.Month, &t.TotalDays, &t.RequestCount); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}

	return trends, rows.Err()
}

// CountRequestsByStatus implements report.Repository.
func (r *reportRepositoryImpl) CountRequestsByStatus(ctx context.Context, status string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// AttendanceStatusCountsOn implements report.Repository.
func (r *reportRepositoryImpl) AttendanceStatusCountsOn(ctx context.Context, date time.Time) (int, int, int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status IN ('present', 'half_day')),
			COUNT(*) FILTER (WHERE status = 'late')
		FROM attendances
		WHERE date = $1
	`

	var present, late, onLeave int
	err := q.QueryRow(ctx, query, date).Scan(&present, &late)
	if err != nil {
		return 0, 0, 0, err
	}

	// On-leave comes from approved requests, there is no attendance row
	onLeaveQuery := `
		SELECT COUNT(DISTINCT user_id)
		FROM leave_requests
		WHERE status = 'approved' AND start_date <= $1 AND end_date >= $1
	`
	if err := q.QueryRow(ctx, onLeaveQuery, date).Scan(&onLeave); err != nil {
		return 0, 0, 0, err
	}

	return present, late, onLeave, nil
}

// AbsentUsersOn implements report.Repository.
func (r *reportRepositoryImpl) AbsentUsersOn(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.name
		FROM users u
		WHERE NOT EXISTS (
			SELECT 1 FROM attendances a WHERE a.user_id = u.id AND a.date = $1
		)
		AND NOT EXISTS (
			SELECT 1 FROM leave_requests lr
			WHERE lr.user_id = u.id AND lr.status = 'approved'
				AND lr.start_date <= $1 AND lr.end_date >= $1
		)
		ORDER BY u.name
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// AverageWorkedHours implements report.Repository.
func (r *reportRepositoryImpl) AverageWorkedHours(ctx context.Context, from, to time.Time) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(AVG(total_hours), 0)
		FROM attendances
		WHERE date >= $1 AND date <= $2 AND check_out IS NOT NULL
	`

	var avg float64
	err := q.QueryRow(ctx, query, from, to).Scan(&avg)
	if err != nil {
		return 0, err
	}

	return avg, nil
}
