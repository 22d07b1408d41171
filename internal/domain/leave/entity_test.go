package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTotalDays(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		halfDay bool
		want    float64
	}{
		{"single day", "2026-03-02", "2026-03-02", false, 1},
		{"inclusive range", "2026-03-02", "2026-03-06", false, 5},
		{"across month boundary", "2026-03-30", "2026-04-02", false, 4},
		{"half day", "2026-03-02", "2026-03-02", true, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalDays(date(tt.start), date(tt.end), tt.halfDay)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"disjoint before", "2026-03-01", "2026-03-05", "2026-03-06", "2026-03-10", false},
		{"disjoint after", "2026-03-06", "2026-03-10", "2026-03-01", "2026-03-05", false},
		{"touching endpoint", "2026-03-01", "2026-03-05", "2026-03-05", "2026-03-10", true},
		{"contained", "2026-03-01", "2026-03-10", "2026-03-03", "2026-03-04", true},
		{"partial", "2026-03-01", "2026-03-05", "2026-03-04", "2026-03-08", true},
		{"same single day", "2026-03-05", "2026-03-05", "2026-03-05", "2026-03-05", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(date(tt.aStart), date(tt.aEnd), date(tt.bStart), date(tt.bEnd))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLeaveBalanceApply(t *testing.T) {
	t.Run("reserve then commit", func(t *testing.T) {
		b := LeaveBalance{TotalAllocated: 12, CarriedForward: 2}

		require.NoError(t, b.Apply(ActionReserve, 3))
		assert.Equal(t, 3.0, b.Pending)
		assert.Equal(t, 14.0, b.Balance())
		assert.Equal(t, 11.0, b.Available())

		require.NoError(t, b.Apply(ActionCommit, 3))
		assert.Equal(t, 0.0, b.Pending)
		assert.Equal(t, 3.0, b.Used)
		assert.Equal(t, 11.0, b.Balance())
		assert.Equal(t, 11.0, b.Available())
	})

	t.Run("reserve then release restores available", func(t *testing.T) {
		b := LeaveBalance{TotalAllocated: 10}

		require.NoError(t, b.Apply(ActionReserve, 2.5))
		require.NoError(t, b.Apply(ActionRelease, 2.5))
		assert.Equal(t, 0.0, b.Pending)
		assert.Equal(t, 0.0, b.Used)
		assert.Equal(t, 10.0, b.Available())
	})

	t.Run("commit more than pending fails", func(t *testing.T) {
		b := LeaveBalance{TotalAllocated: 10, Pending: 1}

		err := b.Apply(ActionCommit, 2)
		assert.ErrorIs(t, err, ErrInvalidState)
		// Failed moves must not mutate the ledger
		assert.Equal(t, 1.0, b.Pending)
		assert.Equal(t, 0.0, b.Used)
	})

	t.Run("release more than pending fails", func(t *testing.T) {
		b := LeaveBalance{TotalAllocated: 10, Pending: 0.5}

		err := b.Apply(ActionRelease, 1)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, 0.5, b.Pending)
	})

	t.Run("non-positive days rejected", func(t *testing.T) {
		b := LeaveBalance{TotalAllocated: 10}

		assert.ErrorIs(t, b.Apply(ActionReserve, 0), ErrInvalidState)
		assert.ErrorIs(t, b.Apply(ActionReserve, -1), ErrInvalidState)
	})

	t.Run("unknown action rejected", func(t *testing.T) {
		b := LeaveBalance{TotalAllocated: 10}

		assert.ErrorIs(t, b.Apply(BalanceAction("refund"), 1), ErrInvalidState)
	})
}

func TestCarryOver(t *testing.T) {
	carryType := LeaveType{CarryForward: true, MaxCarryForward: 5}

	tests := []struct {
		name    string
		balance LeaveBalance
		ltype   LeaveType
		want    float64
	}{
		{"under the cap", LeaveBalance{TotalAllocated: 12, Used: 9}, carryType, 3},
		{"capped", LeaveBalance{TotalAllocated: 12, Used: 2}, carryType, 5},
		{"pending days do not carry", LeaveBalance{TotalAllocated: 12, Used: 9, Pending: 2}, carryType, 1},
		{"nothing left", LeaveBalance{TotalAllocated: 12, Used: 12}, carryType, 0},
		{"carry forward disabled", LeaveBalance{TotalAllocated: 12}, LeaveType{CarryForward: false}, 0},
		{"no cap carries everything", LeaveBalance{TotalAllocated: 12, Used: 2}, LeaveType{CarryForward: true}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CarryOver(tt.balance, tt.ltype))
		})
	}
}

func TestLeaveRequestCanTransition(t *testing.T) {
	tests := []struct {
		from LeaveRequestStatus
		to   LeaveRequestStatus
		want bool
	}{
		{LeaveRequestStatusPending, LeaveRequestStatusApproved, true},
		{LeaveRequestStatusPending, LeaveRequestStatusRejected, true},
		{LeaveRequestStatusPending, LeaveRequestStatusOnHold, true},
		{LeaveRequestStatusOnHold, LeaveRequestStatusApproved, true},
		{LeaveRequestStatusOnHold, LeaveRequestStatusRejected, true},
		{LeaveRequestStatusOnHold, LeaveRequestStatusOnHold, false},
		{LeaveRequestStatusApproved, LeaveRequestStatusRejected, false},
		{LeaveRequestStatusApproved, LeaveRequestStatusOnHold, false},
		{LeaveRequestStatusRejected, LeaveRequestStatusApproved, false},
		{LeaveRequestStatusPending, LeaveRequestStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			r := LeaveRequest{Status: tt.from}
			assert.Equal(t, tt.want, r.CanTransition(tt.to))
		})
	}
}
