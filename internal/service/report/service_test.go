package report

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildAttendanceCSV(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	checkIn := date.Add(9 * time.Hour)
	checkOut := date.Add(17*time.Hour + 30*time.Minute)

	records := []attendance.Attendance{
		{
			UserName:   strPtr(`Smith, John "JJ"`),
			Department: strPtr("Engineering"),
			Date:       date,
			CheckIn:    &checkIn,
			CheckOut:   &checkOut,
			Status:     attendance.StatusPresent,
			TotalHours: 8.5,
		},
		{
			UserName:   strPtr("Jane Doe"),
			Department: strPtr("Sales"),
			Date:       date,
			CheckIn:    &checkIn,
			Status:     attendance.StatusLate,
		},
	}

	out, err := buildAttendanceCSV(records)
	require.NoError(t, err)

	// A stock CSV reader must round-trip the quoted name untouched
	parsed, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 3)

	assert.Equal(t, []string{"Employee", "Department", "Date", "Check In", "Check Out", "Status", "Total Hours"}, parsed[0])
	assert.Equal(t, []string{`Smith, John "JJ"`, "Engineering", "2026-03-02", "09:00:00", "17:30:00", "present", "8.50"}, parsed[1])
	assert.Equal(t, []string{"Jane Doe", "Sales", "2026-03-02", "09:00:00", "", "late", "0.00"}, parsed[2])
}

func TestBuildLeaveCSV(t *testing.T) {
	start := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	remarks := "Approved, enjoy"

	requests := []leave.LeaveRequest{
		{
			UserName:      strPtr("Smith, John"),
			Department:    strPtr("Engineering"),
			LeaveTypeName: strPtr("Annual Leave"),
			StartDate:     start,
			EndDate:       start.AddDate(0, 0, 2),
			TotalDays:     3,
			Status:        leave.LeaveRequestStatusApproved,
			Remarks:       &remarks,
			CreatedAt:     start.AddDate(0, 0, -10),
		},
		{
			UserName:      strPtr("Jane Doe"),
			LeaveTypeName: strPtr("Sick Leave"),
			StartDate:     start,
			EndDate:       start,
			HalfDay:       true,
			TotalDays:     0.5,
			Status:        leave.LeaveRequestStatusPending,
			CreatedAt:     start,
		},
	}

	out, err := buildLeaveCSV(requests)
	require.NoError(t, err)

	parsed, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 3)

	assert.Equal(t, []string{"Submitted", "Employee", "Department", "Leave Type", "Start Date", "End Date", "Total Days", "Status", "Remarks"}, parsed[0])
	assert.Equal(t, []string{"2026-03-27", "Smith, John", "Engineering", "Annual Leave", "2026-04-06", "2026-04-08", "3.0", "approved", "Approved, enjoy"}, parsed[1])
	assert.Equal(t, []string{"2026-04-06", "Jane Doe", "", "Sick Leave", "2026-04-06", "2026-04-06", "0.5", "pending", ""}, parsed[2])
}

func TestBuildAttendanceCSVEmpty(t *testing.T) {
	out, err := buildAttendanceCSV(nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Len(t, lines, 1)
}
