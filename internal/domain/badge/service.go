package badge

import (
	"context"
)

// UserBadges pairs the catalogue with what the user has earned
type UserBadges struct {
	Earned        []string     `json:"earned"`
	CurrentStreak int          `json:"current_streak"`
	LongestStreak int          `json:"longest_streak"`
	Catalogue     []Definition `json:"catalogue"`
}

type BadgeService interface {
	ListDefinitions(ctx context.Context) []Definition
	GetUserBadges(ctx context.Context, userID string) (UserBadges, error)
	// EvaluateUser runs the award rules synchronously and persists any
	// newly earned badges.
	EvaluateUser(ctx context.Context, userID string) (Evaluation, error)
	// Enqueue schedules an asynchronous evaluation, typically right after
	// a check-in or check-out. Drops the work item when the queue is full
	// rather than blocking the caller.
	Enqueue(userID string)

	// Stop waits for the background workers to finish
	Stop()
}
