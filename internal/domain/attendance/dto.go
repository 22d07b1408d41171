package attendance

// AttendanceResponse represents one attendance record in API responses
type AttendanceResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	UserName   *string `json:"user_name,omitempty"`
	Department *string `json:"department,omitempty"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Status     string  `json:"status"`
	TotalHours float64 `json:"total_hours"`
}

func (a *Attendance) ToResponse() AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		UserName:   a.UserName,
		Department: a.Department,
		Date:       a.Date.Format("2006-01-02"),
		Status:     string(a.Status),
		TotalHours: a.TotalHours,
	}
	if a.CheckIn != nil {
		checkIn := a.CheckIn.Format("2006-01-02T15:04:05Z07:00")
		resp.CheckIn = &checkIn
	}
	if a.CheckOut != nil {
		checkOut := a.CheckOut.Format("2006-01-02T15:04:05Z07:00")
		resp.CheckOut = &checkOut
	}
	return resp
}

// Filter narrows attendance listings
type Filter struct {
	UserID     string
	Department string
	Status     string
	From       string // "2006-01-02", inclusive
	To         string // "2006-01-02", inclusive
}

// Summary aggregates one user's attendance over a period
type Summary struct {
	UserID       string  `json:"user_id"`
	UserName     *string `json:"user_name,omitempty"`
	Department   *string `json:"department,omitempty"`
	PresentDays  int     `json:"present_days"`
	LateDays     int     `json:"late_days"`
	HalfDays     int     `json:"half_days"`
	LeaveDays    int     `json:"leave_days"`
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
}

// TodayResponse describes the caller's current day
type TodayResponse struct {
	CheckedIn  bool                `json:"checked_in"`
	CheckedOut bool                `json:"checked_out"`
	Record     *AttendanceResponse `json:"record,omitempty"`
}
