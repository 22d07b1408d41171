package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/report"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
)

var (
	csvHeader      = []string{"Employee", "Department", "Date", "Check In", "Check Out", "Status", "Total Hours"}
	leaveCSVHeader = []string{"Submitted", "Employee", "Department", "Leave Type", "Start Date", "End Date", "Total Days", "Status", "Remarks"}
)

type Service struct {
	report.Repository
	AttendanceRepository   attendance.AttendanceRepository
	LeaveBalanceRepository leave.LeaveBalanceRepository
	LeaveRequestRepository leave.LeaveRequestRepository
	UserRepository         user.UserRepository
}

func NewService(
	reportRepository report.Repository,
	attendanceRepository attendance.AttendanceRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	userRepository user.UserRepository,
) *Service {
	return &Service{
		Repository:             reportRepository,
		AttendanceRepository:   attendanceRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
		LeaveRequestRepository: leaveRequestRepository,
		UserRepository:         userRepository,
	}
}

// ExportAttendanceCSV implements report.ReportService. encoding/csv handles
// quoting, so names containing commas or quotes survive the round trip.
func (s *Service) ExportAttendanceCSV(ctx context.Context, filter attendance.Filter) ([]byte, error) {
	records, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return buildAttendanceCSV(records)
}

func buildAttendanceCSV(records []attendance.Attendance) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := range records {
		if err := w.Write(csvRow(&records[i])); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func csvRow(a *attendance.Attendance) []string {
	name := ""
	if a.UserName != nil {
		name = *a.UserName
	}
	department := ""
	if a.Department != nil {
		department = *a.Department
	}
	checkIn := ""
	if a.CheckIn != nil {
		checkIn = a.CheckIn.Format("15:04:05")
	}
	checkOut := ""
	if a.CheckOut != nil {
		checkOut = a.CheckOut.Format("15:04:05")
	}

	return []string{
		name,
		department,
		a.Date.Format("2006-01-02"),
		checkIn,
		checkOut,
		string(a.Status),
		attendance.FormatHours(a.TotalHours),
	}
}

// GetLeaveAnalytics implements report.ReportService.
func (s *Service) GetLeaveAnalytics(ctx context.Context, year int) (report.LeaveAnalytics, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	byType, err := s.Repository.LeaveUsageByType(ctx, year)
	if err != nil {
		return report.LeaveAnalytics{}, fmt.Errorf("failed to aggregate by type: %w", err)
	}

	byMonth, err := s.Repository.LeaveUsageByMonth(ctx, year)
	if err != nil {
		return report.LeaveAnalytics{}, fmt.Errorf("failed to aggregate by month: %w", err)
	}

	byDepartment, err := s.Repository.LeaveUsageByDepartment(ctx, year)
	if err != nil {
		return report.LeaveAnalytics{}, fmt.Errorf("failed to aggregate by department: %w", err)
	}

	analytics := report.LeaveAnalytics{
		Year:         year,
		ByType:       byType,
		ByMonth:      byMonth,
		ByDepartment: byDepartment,
	}
	for _, u := range byType {
		analytics.TotalRequests += u.RequestCount
		analytics.TotalDays += u.TotalDays
	}

	return analytics, nil
}

// GetEmployeeLeaveAnalytics implements report.ReportService.
func (s *Service) GetEmployeeLeaveAnalytics(ctx context.Context, userID string, year int) (report.EmployeeLeaveAnalytics, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	summary, err := s.Repository.UserLeaveSummary(ctx, userID, year)
	if err != nil {
		return report.EmployeeLeaveAnalytics{}, fmt.Errorf("failed to summarize leave: %w", err)
	}

	byMonth, err := s.Repository.UserLeaveUsageByMonth(ctx, userID, year)
	if err != nil {
		return report.EmployeeLeaveAnalytics{}, fmt.Errorf("failed to aggregate by month: %w", err)
	}

	byType, err := s.Repository.UserLeaveUsageByType(ctx, userID, year)
	if err != nil {
		return report.EmployeeLeaveAnalytics{}, fmt.Errorf("failed to aggregate by type: %w", err)
	}

	return report.EmployeeLeaveAnalytics{
		Year:    year,
		Summary: summary,
		ByMonth: byMonth,
		ByType:  byType,
	}, nil
}

// ListLeaveExport implements report.ReportService.
func (s *Service) ListLeaveExport(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, requests[i].ToResponse())
	}

	return responses, nil
}

// ExportLeaveCSV implements report.ReportService.
func (s *Service) ExportLeaveCSV(ctx context.Context, filter leave.LeaveRequestFilter) ([]byte, error) {
	requests, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return buildLeaveCSV(requests)
}

func buildLeaveCSV(requests []leave.LeaveRequest) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(leaveCSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := range requests {
		if err := w.Write(leaveCSVRow(&requests[i])); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func leaveCSVRow(r *leave.LeaveRequest) []string {
	name := ""
	if r.UserName != nil {
		name = *r.UserName
	}
	department := ""
	if r.Department != nil {
		department = *r.Department
	}
	leaveType := ""
	if r.LeaveTypeName != nil {
		leaveType = *r.LeaveTypeName
	}
	remarks := ""
	if r.Remarks != nil {
		remarks = *r.Remarks
	}

	return []string{
		r.CreatedAt.Format("2006-01-02"),
		name,
		department,
		leaveType,
		r.StartDate.Format("2006-01-02"),
		r.EndDate.Format("2006-01-02"),
		strconv.FormatFloat(r.TotalDays, 'f', 1, 64),
		string(r.Status),
		remarks,
	}
}

// GetEmployeeDashboard implements report.ReportService.
func (s *Service) GetEmployeeDashboard(ctx context.Context, userID string) (report.EmployeeDashboard, error) {
	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return report.EmployeeDashboard{}, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	record, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return report.EmployeeDashboard{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}

	balances, err := s.LeaveBalanceRepository.GetByUserYear(ctx, userID, now.Year())
	if err != nil {
		return report.EmployeeDashboard{}, fmt.Errorf("failed to load leave balances: %w", err)
	}
	available := 0.0
	for i := range balances {
		available += balances[i].Available()
	}

	counts, err := s.Repository.RequestStatusCounts(ctx, userID)
	if err != nil {
		return report.EmployeeDashboard{}, fmt.Errorf("failed to count requests: %w", err)
	}

	dashboard := report.EmployeeDashboard{
		CheckedInToday:  record != nil,
		CurrentStreak:   u.CurrentStreak,
		AvailableLeave:  available,
		PendingRequests: counts.Pending,
		MyRequests:      counts,
	}
	if record != nil {
		status := string(record.Status)
		dashboard.TodayStatus = &status
	}

	return dashboard, nil
}

// GetManagerDashboard implements report.ReportService.
func (s *Service) GetManagerDashboard(ctx context.Context) (report.ManagerDashboard, error) {
	pending, err := s.Repository.CountRequestsByStatus(ctx, string(leave.LeaveRequestStatusPending))
	if err != nil {
		return report.ManagerDashboard{}, fmt.Errorf("failed to count pending requests: %w", err)
	}

	onHold, err := s.Repository.CountRequestsByStatus(ctx, string(leave.LeaveRequestStatusOnHold))
	if err != nil {
		return report.ManagerDashboard{}, fmt.Errorf("failed to count on-hold requests: %w", err)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	present, late, onLeave, err := s.Repository.AttendanceStatusCountsOn(ctx, today)
	if err != nil {
		return report.ManagerDashboard{}, fmt.Errorf("failed to count today's attendance: %w", err)
	}

	absent, err := s.Repository.AbsentUsersOn(ctx, today)
	if err != nil {
		return report.ManagerDashboard{}, fmt.Errorf("failed to list absent users: %w", err)
	}

	headCount, err := s.UserRepository.CountAll(ctx)
	if err != nil {
		return report.ManagerDashboard{}, fmt.Errorf("failed to count users: %w", err)
	}

	avgHours, err := s.Repository.AverageWorkedHours(ctx, today.AddDate(0, 0, -30), today)
	if err != nil {
		return report.ManagerDashboard{}, fmt.Errorf("failed to average worked hours: %w", err)
	}

	return report.ManagerDashboard{
		PendingApprovals: pending,
		OnHoldRequests:   onHold,
		PresentToday:     present,
		LateToday:        late,
		OnLeaveToday:     onLeave,
		AbsentToday:      absent,
		HeadCount:        headCount,
		AverageHours:     avgHours,
	}, nil
}
