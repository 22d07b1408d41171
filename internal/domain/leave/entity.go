package leave

import (
	"math"
	"time"
)

// LeaveType entity
type LeaveType struct {
	ID          string
	Name        string
	Code        string
	Description *string
	Color       *string

	// Policy Rules
	IsActive           bool
	AllowHalfDay       bool
	RequiresAttachment bool
	MaxContinuousDays  int // 0 means unlimited

	// Quota Rules
	YearlyQuota     float64
	CarryForward    bool
	MaxCarryForward float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaveBalance is the per-user, per-type, per-year quota ledger. Used and
// Pending only move through Apply so the ledger cannot go negative.
type LeaveBalance struct {
	ID          string
	UserID      string
	LeaveTypeID string
	Year        int

	TotalAllocated float64
	CarriedForward float64
	Used           float64
	Pending        float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	LeaveTypeName *string
}

// Balance returns the total entitlement minus what has been consumed.
func (b *LeaveBalance) Balance() float64 {
	return b.TotalAllocated + b.CarriedForward - b.Used
}

// Available returns what a new request may still claim. Days held by
// pending requests are reserved and not available.
func (b *LeaveBalance) Available() float64 {
	return b.Balance() - b.Pending
}

type BalanceAction string

const (
	ActionReserve BalanceAction = "reserve" // submit: days move into pending
	ActionCommit  BalanceAction = "commit"  // approve: days move pending -> used
	ActionRelease BalanceAction = "release" // reject: days leave pending
)

// Apply moves days through the ledger for the given action. It rejects any
// move that would leave pending or used negative.
func (b *LeaveBalance) Apply(action BalanceAction, days float64) error {
	if days <= 0 {
		return ErrInvalidState
	}

	switch action {
	case ActionReserve:
		b.Pending += days
	case ActionCommit:
		if b.Pending-days < 0 {
			return ErrInvalidState
		}
		b.Pending -= days
		b.Used += days
	case ActionRelease:
		if b.Pending-days < 0 {
			return ErrInvalidState
		}
		b.Pending -= days
	default:
		return ErrInvalidState
	}

	return nil
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
	LeaveRequestStatusOnHold   LeaveRequestStatus = "on_hold"
)

// validTransitions encodes the request state machine. Approved and rejected
// are terminal.
var validTransitions = map[LeaveRequestStatus][]LeaveRequestStatus{
	LeaveRequestStatusPending: {
		LeaveRequestStatusApproved,
		LeaveRequestStatusRejected,
		LeaveRequestStatusOnHold,
	},
	LeaveRequestStatusOnHold: {
		LeaveRequestStatusApproved,
		LeaveRequestStatusRejected,
	},
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	UserID      string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	HalfDay   bool
	TotalDays float64

	Reason        string
	AttachmentURL *string

	Status     LeaveRequestStatus
	ApproverID *string
	ActionAt   *time.Time
	Remarks    *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	LeaveTypeName *string
	UserName      *string
	Department    *string
}

// CanTransition reports whether the state machine allows moving from the
// request's current status to the target.
func (r *LeaveRequest) CanTransition(target LeaveRequestStatus) bool {
	for _, allowed := range validTransitions[r.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TotalDays computes how many days a request consumes. Half-day requests
// always consume 0.5; otherwise both endpoints count, so a single-day
// request consumes 1.
func TotalDays(start, end time.Time, halfDay bool) float64 {
	if halfDay {
		return 0.5
	}
	return math.Ceil(end.Sub(start).Hours()/24) + 1
}

// Overlaps reports whether two inclusive date ranges share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// CarryOver computes how many unused days roll into the next year, capped by
// the type's policy. Days still reserved by open requests do not carry.
func CarryOver(b LeaveBalance, t LeaveType) float64 {
	if !t.CarryForward {
		return 0
	}
	remaining := b.Available()
	if remaining <= 0 {
		return 0
	}
	if t.MaxCarryForward > 0 && remaining > t.MaxCarryForward {
		return t.MaxCarryForward
	}
	return remaining
}
