package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRules = Rules{WorkStart: "09:30", HalfDayHours: 4}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestApplyCheckIn(t *testing.T) {
	t.Run("before work start is present", func(t *testing.T) {
		var a Attendance
		require.NoError(t, a.ApplyCheckIn(at(9, 29), testRules))
		assert.Equal(t, StatusPresent, a.Status)
		assert.Equal(t, at(9, 29), *a.CheckIn)
		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), a.Date)
	})

	t.Run("exactly at work start is present", func(t *testing.T) {
		var a Attendance
		require.NoError(t, a.ApplyCheckIn(at(9, 30), testRules))
		assert.Equal(t, StatusPresent, a.Status)
	})

	t.Run("after work start is late", func(t *testing.T) {
		var a Attendance
		require.NoError(t, a.ApplyCheckIn(at(9, 31), testRules))
		assert.Equal(t, StatusLate, a.Status)
	})

	t.Run("double check-in rejected", func(t *testing.T) {
		var a Attendance
		require.NoError(t, a.ApplyCheckIn(at(9, 0), testRules))
		assert.ErrorIs(t, a.ApplyCheckIn(at(10, 0), testRules), ErrAlreadyCheckedIn)
	})
}

func TestApplyCheckOut(t *testing.T) {
	t.Run("full day stays present", func(t *testing.T) {
		var a Attendance
		require.NoError(t, a.ApplyCheckIn(at(9, 0), testRules))
		require.NoError(t, a.ApplyCheckOut(at(17, 0), testRules))
		assert.Equal(t, StatusPresent, a.Status)
		assert.Equal(t, 8.0, a.TotalHours)
	})

	t.Run("short day becomes half day", func(t *testing.T) {
		var a Attendance
		require.NoError(t, a.ApplyCheckIn(at(9, 0), testRules))
		require.NoError(t, a.ApplyCheckOut(at(12, 30), testRules))
		assert.Equal(t, StatusHalfDay, a.Status)
		assert.Equal(t, 3.5, a.TotalHours)
	})

	t.Run("exactly threshold hours stays present", func(t *testing.T) {
		var a Attendance
		require.NoError(t, a.ApplyCheckIn(at(9, 0), testRules))
		require.NoError(t, a.ApplyCheckOut(at(13, 0), testRules))
		assert.Equal(t, StatusPresent, a.Status)
	})

	t.Run("late is never downgraded to half day", func(t *testing.T) {
		var a Attendance
		require.NoError(t, a.ApplyCheckIn(at(10, 0), testRules))
		require.NoError(t, a.ApplyCheckOut(at(12, 0), testRules))
		assert.Equal(t, StatusLate, a.Status)
		assert.Equal(t, 2.0, a.TotalHours)
	})

	t.Run("total hours rounds to two decimals", func(t *testing.T) {
		var a Attendance
		require.NoError(t, a.ApplyCheckIn(at(9, 0), testRules))
		out := at(16, 20).Add(42 * time.Second)
		require.NoError(t, a.ApplyCheckOut(out, testRules))
		assert.Equal(t, 7.35, a.TotalHours)
	})

	t.Run("check-out without check-in rejected", func(t *testing.T) {
		var a Attendance
		assert.ErrorIs(t, a.ApplyCheckOut(at(17, 0), testRules), ErrNotCheckedIn)
	})

	t.Run("double check-out rejected", func(t *testing.T) {
		var a Attendance
		require.NoError(t, a.ApplyCheckIn(at(9, 0), testRules))
		require.NoError(t, a.ApplyCheckOut(at(17, 0), testRules))
		assert.ErrorIs(t, a.ApplyCheckOut(at(18, 0), testRules), ErrAlreadyCheckedOut)
	})
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "7.35", FormatHours(7.35))
	assert.Equal(t, "0.00", FormatHours(0))
	assert.Equal(t, "8.00", FormatHours(8))
}
