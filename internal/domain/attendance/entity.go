package attendance

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	StatusOnLeave Status = "on_leave"
	StatusAbsent  Status = "absent"
)

// Rules holds the derivation thresholds. Loaded from configuration once and
// shared read-only.
type Rules struct {
	WorkStart    string  // "HH:MM", check-ins after this are late
	HalfDayHours float64 // worked hours below this become half-day
}

type Attendance struct {
	ID         string
	UserID     string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status
	TotalHours float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	UserName   *string
	Department *string
}

// ApplyCheckIn records the clock-in and derives present or late from the
// work-start threshold. Both instants are compared on the same calendar day.
func (a *Attendance) ApplyCheckIn(now time.Time, rules Rules) error {
	if a.CheckIn != nil {
		return ErrAlreadyCheckedIn
	}

	threshold, err := workStartOn(now, rules.WorkStart)
	if err != nil {
		return fmt.Errorf("parsing work start time: %w", err)
	}

	a.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	a.CheckIn = &now
	if now.After(threshold) {
		a.Status = StatusLate
	} else {
		a.Status = StatusPresent
	}

	return nil
}

// ApplyCheckOut records the clock-out, computes worked hours to two decimal
// places, and downgrades a short present day to half-day. A late day is
// never downgraded.
func (a *Attendance) ApplyCheckOut(now time.Time, rules Rules) error {
	if a.CheckIn == nil {
		return ErrNotCheckedIn
	}
	if a.CheckOut != nil {
		return ErrAlreadyCheckedOut
	}

	a.CheckOut = &now
	a.TotalHours = round2(now.Sub(*a.CheckIn).Hours())
	if a.TotalHours < rules.HalfDayHours && a.Status != StatusLate {
		a.Status = StatusHalfDay
	}

	return nil
}

// workStartOn places the HH:MM threshold on the same day and location as t.
func workStartOn(t time.Time, workStart string) (time.Time, error) {
	clock, err := time.Parse("15:04", workStart)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), clock.Hour(), clock.Minute(), 0, 0, t.Location()), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatHours renders worked hours the way the exports display them.
func FormatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
