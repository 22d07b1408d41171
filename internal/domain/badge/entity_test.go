package badge

import (
	"testing"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

var testThresholds = Thresholds{
	OnTimeStreakDays:    5,
	PerfectMonthMinDays: 20,
	EarlyBirdHour:       9,
	EarlyBirdCount:      10,
	PunctualityWindow:   30,
	PunctualityMinDays:  20,
}

// buildRecords returns n attendance records ordered newest first, ending on
// the day before now, one per day.
func buildRecords(now time.Time, n int, status attendance.Status, checkInHour int) []attendance.Attendance {
	records := make([]attendance.Attendance, 0, n)
	for i := 1; i <= n; i++ {
		day := now.AddDate(0, 0, -i)
		date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		checkIn := date.Add(time.Duration(checkInHour) * time.Hour)
		records = append(records, attendance.Attendance{
			UserID:  "u1",
			Date:    date,
			CheckIn: &checkIn,
			Status:  status,
		})
	}
	return records
}

func TestCurrentOnTimeStreak(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	t.Run("all on time", func(t *testing.T) {
		records := buildRecords(now, 7, attendance.StatusPresent, 8)
		assert.Equal(t, 7, currentOnTimeStreak(records))
	})

	t.Run("late day breaks streak", func(t *testing.T) {
		records := buildRecords(now, 7, attendance.StatusPresent, 8)
		records[3].Status = attendance.StatusLate
		assert.Equal(t, 3, currentOnTimeStreak(records))
	})

	t.Run("most recent day late means zero", func(t *testing.T) {
		records := buildRecords(now, 7, attendance.StatusPresent, 8)
		records[0].Status = attendance.StatusLate
		assert.Equal(t, 0, currentOnTimeStreak(records))
	})

	t.Run("half day keeps streak alive", func(t *testing.T) {
		records := buildRecords(now, 3, attendance.StatusPresent, 8)
		records[1].Status = attendance.StatusHalfDay
		assert.Equal(t, 3, currentOnTimeStreak(records))
	})
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	t.Run("streak badge at threshold", func(t *testing.T) {
		records := buildRecords(now, 5, attendance.StatusPresent, 10)

		eval := Evaluate(records, nil, 0, testThresholds, now)
		assert.Contains(t, eval.NewBadges, OnTimeStreak)
		assert.Equal(t, 5, eval.CurrentStreak)
		assert.Equal(t, 5, eval.LongestStreak)
	})

	t.Run("below streak threshold no badge", func(t *testing.T) {
		records := buildRecords(now, 4, attendance.StatusPresent, 10)

		eval := Evaluate(records, nil, 0, testThresholds, now)
		assert.NotContains(t, eval.NewBadges, OnTimeStreak)
	})

	t.Run("owned badges are not re-awarded", func(t *testing.T) {
		records := buildRecords(now, 5, attendance.StatusPresent, 10)

		eval := Evaluate(records, []string{OnTimeStreak}, 5, testThresholds, now)
		assert.NotContains(t, eval.NewBadges, OnTimeStreak)
	})

	t.Run("longest streak never shrinks", func(t *testing.T) {
		records := buildRecords(now, 2, attendance.StatusPresent, 10)

		eval := Evaluate(records, nil, 9, testThresholds, now)
		assert.Equal(t, 2, eval.CurrentStreak)
		assert.Equal(t, 9, eval.LongestStreak)
	})

	t.Run("early bird", func(t *testing.T) {
		records := buildRecords(now, 10, attendance.StatusPresent, 8)

		eval := Evaluate(records, nil, 0, testThresholds, now)
		assert.Contains(t, eval.NewBadges, EarlyBird)
	})

	t.Run("check-in at threshold hour does not count as early", func(t *testing.T) {
		records := buildRecords(now, 10, attendance.StatusPresent, 9)

		eval := Evaluate(records, nil, 0, testThresholds, now)
		assert.NotContains(t, eval.NewBadges, EarlyBird)
	})

	t.Run("perfect month", func(t *testing.T) {
		records := buildRecords(now, 20, attendance.StatusPresent, 10)

		eval := Evaluate(records, nil, 0, testThresholds, now)
		assert.Contains(t, eval.NewBadges, PerfectMonth)
	})

	t.Run("one late arrival spoils the month", func(t *testing.T) {
		records := buildRecords(now, 21, attendance.StatusPresent, 10)
		records[10].Status = attendance.StatusLate

		eval := Evaluate(records, nil, 0, testThresholds, now)
		assert.NotContains(t, eval.NewBadges, PerfectMonth)
	})

	t.Run("punctuality champion", func(t *testing.T) {
		records := buildRecords(now, 22, attendance.StatusPresent, 10)

		eval := Evaluate(records, nil, 0, testThresholds, now)
		assert.Contains(t, eval.NewBadges, PunctualityChampion)
	})

	t.Run("late inside the window blocks punctuality champion", func(t *testing.T) {
		records := buildRecords(now, 22, attendance.StatusPresent, 10)
		records[21].Status = attendance.StatusLate

		eval := Evaluate(records, nil, 0, testThresholds, now)
		assert.NotContains(t, eval.NewBadges, PunctualityChampion)
	})

	t.Run("no records", func(t *testing.T) {
		eval := Evaluate(nil, nil, 0, testThresholds, now)
		assert.Empty(t, eval.NewBadges)
		assert.Equal(t, 0, eval.CurrentStreak)
	})
}
