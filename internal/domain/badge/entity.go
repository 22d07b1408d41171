package badge

import (
	"fmt"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
)

const (
	OnTimeStreak        = "on_time_streak"
	PerfectMonth        = "perfect_month"
	EarlyBird           = "early_bird"
	PunctualityChampion = "punctuality_champion"
)

// Definition describes one badge for the catalogue endpoint
type Definition struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Thresholds holds the award criteria. Populated from configuration.
type Thresholds struct {
	OnTimeStreakDays    int
	PerfectMonthMinDays int
	EarlyBirdHour       int
	EarlyBirdCount      int
	PunctualityWindow   int
	PunctualityMinDays  int
}

// Definitions returns the badge catalogue with the active thresholds
// rendered into the descriptions.
func Definitions(th Thresholds) []Definition {
	return []Definition{
		{
			Slug:        OnTimeStreak,
			Name:        "On-Time Streak",
			Description: describeStreak(th.OnTimeStreakDays),
			Icon:        "flame",
		},
		{
			Slug:        PerfectMonth,
			Name:        "Perfect Month",
			Description: describePerfectMonth(th.PerfectMonthMinDays),
			Icon:        "calendar-check",
		},
		{
			Slug:        EarlyBird,
			Name:        "Early Bird",
			Description: describeEarlyBird(th.EarlyBirdHour, th.EarlyBirdCount),
			Icon:        "sunrise",
		},
		{
			Slug:        PunctualityChampion,
			Name:        "Punctuality Champion",
			Description: describePunctuality(th.PunctualityWindow, th.PunctualityMinDays),
			Icon:        "trophy",
		},
	}
}

func describeStreak(days int) string {
	return fmt.Sprintf("Arrive on time %d working days in a row", days)
}

func describePerfectMonth(minDays int) string {
	return fmt.Sprintf("At least %d attended days in a month without a single late arrival", minDays)
}

func describeEarlyBird(hour, count int) string {
	return fmt.Sprintf("Check in before %02d:00 on %d different days", hour, count)
}

func describePunctuality(window, minDays int) string {
	return fmt.Sprintf("At least %d attended days over the last %d days with zero late arrivals", minDays, window)
}

// Evaluation is the outcome of running the award rules for one user
type Evaluation struct {
	NewBadges     []string
	CurrentStreak int
	LongestStreak int
}

// Evaluate runs the award rules over a user's attendance history. Records
// must be ordered newest first. Already-owned badges are never re-awarded.
// The function is pure so the rules can be tested without a database.
func Evaluate(records []attendance.Attendance, owned []string, longestStreak int, th Thresholds, now time.Time) Evaluation {
	ownedSet := make(map[string]struct{}, len(owned))
	for _, slug := range owned {
		ownedSet[slug] = struct{}{}
	}

	eval := Evaluation{
		CurrentStreak: currentOnTimeStreak(records),
		LongestStreak: longestStreak,
	}
	if eval.CurrentStreak > eval.LongestStreak {
		eval.LongestStreak = eval.CurrentStreak
	}

	award := func(slug string, earned bool) {
		if !earned {
			return
		}
		if _, ok := ownedSet[slug]; ok {
			return
		}
		eval.NewBadges = append(eval.NewBadges, slug)
	}

	award(OnTimeStreak, th.OnTimeStreakDays > 0 && eval.CurrentStreak >= th.OnTimeStreakDays)
	award(PerfectMonth, isPerfectMonth(records, now, th.PerfectMonthMinDays))
	award(EarlyBird, countEarlyCheckIns(records, th.EarlyBirdHour) >= th.EarlyBirdCount && th.EarlyBirdCount > 0)
	award(PunctualityChampion, isPunctualityChampion(records, now, th))

	return eval
}

// currentOnTimeStreak counts consecutive on-time days starting from the most
// recent record. Any late day breaks the streak.
func currentOnTimeStreak(records []attendance.Attendance) int {
	streak := 0
	for _, rec := range records {
		if rec.Status == attendance.StatusLate {
			break
		}
		if rec.Status != attendance.StatusPresent && rec.Status != attendance.StatusHalfDay {
			break
		}
		streak++
	}
	return streak
}

// isPerfectMonth checks the current calendar month: enough attended days and
// not a single late one.
func isPerfectMonth(records []attendance.Attendance, now time.Time, minDays int) bool {
	if minDays <= 0 {
		return false
	}

	attended := 0
	for _, rec := range records {
		if rec.Date.Year() != now.Year() || rec.Date.Month() != now.Month() {
			continue
		}
		if rec.Status == attendance.StatusLate {
			return false
		}
		if rec.Status == attendance.StatusPresent {
			attended++
		}
	}
	return attended >= minDays
}

func countEarlyCheckIns(records []attendance.Attendance, beforeHour int) int {
	count := 0
	for _, rec := range records {
		if rec.CheckIn != nil && rec.CheckIn.Hour() < beforeHour {
			count++
		}
	}
	return count
}

// isPunctualityChampion checks the trailing window: enough attended days and
// zero late arrivals.
func isPunctualityChampion(records []attendance.Attendance, now time.Time, th Thresholds) bool {
	if th.PunctualityMinDays <= 0 || th.PunctualityWindow <= 0 {
		return false
	}

	cutoff := now.AddDate(0, 0, -th.PunctualityWindow)
	attended := 0
	for _, rec := range records {
		if rec.Date.Before(cutoff) {
			continue
		}
		if rec.Status == attendance.StatusLate {
			return false
		}
		if rec.Status == attendance.StatusPresent || rec.Status == attendance.StatusHalfDay {
			attended++
		}
	}
	return attended >= th.PunctualityMinDays
}
