package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records
type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	// GetByUserAndDate retrieves the record for one user on one calendar
	// day. Used to prevent double check-in. Returns nil when no record
	// exists yet.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)
	Update(ctx context.Context, attendance Attendance) error
	List(ctx context.Context, filter Filter) ([]Attendance, error)
	ListByUser(ctx context.Context, userID string, filter Filter) ([]Attendance, error)
	// ListRecent returns the user's records ordered newest first, capped
	// at limit. Badge evaluation reads from this.
	ListRecent(ctx context.Context, userID string, limit int) ([]Attendance, error)
}
