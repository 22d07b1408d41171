package attendance

import (
	"context"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, userID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, userID string) (AttendanceResponse, error)
	GetToday(ctx context.Context, userID string) (TodayResponse, error)
	ListMyAttendance(ctx context.Context, userID string, filter Filter) ([]AttendanceResponse, error)
	ListAttendance(ctx context.Context, filter Filter) ([]AttendanceResponse, error)
	GetMySummary(ctx context.Context, userID string, from, to string) (Summary, error)
	GetTeamSummaries(ctx context.Context, filter Filter) ([]Summary, error)
}
