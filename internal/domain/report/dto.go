package report

// LeaveTypeUsage aggregates approved leave per type
type LeaveTypeUsage struct {
	LeaveTypeID  string  `json:"leave_type_id"`
	Name         string  `json:"name"`
	TotalDays    float64 `json:"total_days"`
	RequestCount int     `json:"request_count"`
}

// MonthlyLeaveTrend aggregates approved leave per calendar month
type MonthlyLeaveTrend struct {
	Month        int     `json:"month"`
	TotalDays    float64 `json:"total_days"`
	RequestCount int     `json:"request_count"`
}

// DepartmentLeaveUsage aggregates approved leave per department
type DepartmentLeaveUsage struct {
	Department   string  `json:"department"`
	TotalDays    float64 `json:"total_days"`
	RequestCount int     `json:"request_count"`
}

// LeaveAnalytics bundles the analytics widgets for one year
type LeaveAnalytics struct {
	Year          int                    `json:"year"`
	ByType        []LeaveTypeUsage       `json:"by_type"`
	ByMonth       []MonthlyLeaveTrend    `json:"by_month"`
	ByDepartment  []DepartmentLeaveUsage `json:"by_department"`
	TotalRequests int                    `json:"total_requests"`
	TotalDays     float64                `json:"total_days"`
}

// EmployeeLeaveSummary carries one employee's yearly leave totals
type EmployeeLeaveSummary struct {
	TotalRequests int     `json:"total_requests"`
	Approved      int     `json:"approved"`
	Pending       int     `json:"pending"`
	Rejected      int     `json:"rejected"`
	OnHold        int     `json:"on_hold"`
	DaysTaken     float64 `json:"days_taken"`
	HalfDays      int     `json:"half_days"`
}

// EmployeeLeaveAnalytics is the personal analytics payload: yearly summary
// plus monthly and per-type distribution of approved leave
type EmployeeLeaveAnalytics struct {
	Year    int                  `json:"year"`
	Summary EmployeeLeaveSummary `json:"summary"`
	ByMonth []MonthlyLeaveTrend  `json:"by_month"`
	ByType  []LeaveTypeUsage     `json:"by_type"`
}

// StatusCounts tallies request statuses, for the approvals widget
type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	OnHold   int `json:"on_hold"`
}

// EmployeeDashboard is the landing-page payload for a regular employee
type EmployeeDashboard struct {
	CheckedInToday  bool         `json:"checked_in_today"`
	TodayStatus     *string      `json:"today_status,omitempty"`
	CurrentStreak   int          `json:"current_streak"`
	AvailableLeave  float64      `json:"available_leave"`
	PendingRequests int          `json:"pending_requests"`
	MyRequests      StatusCounts `json:"my_requests"`
}

// ManagerDashboard is the landing-page payload for a manager
type ManagerDashboard struct {
	PendingApprovals int      `json:"pending_approvals"`
	OnHoldRequests   int      `json:"on_hold_requests"`
	PresentToday     int      `json:"present_today"`
	LateToday        int      `json:"late_today"`
	OnLeaveToday     int      `json:"on_leave_today"`
	AbsentToday      []string `json:"absent_today"`
	HeadCount        int      `json:"head_count"`
	AverageHours     float64  `json:"average_hours"`
}
