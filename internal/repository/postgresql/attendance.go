package postgresql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

const attendanceSelect = `
	SELECT a.id, a.user_id, a.date, a.check_in, a.check_out, a.status, a.total_hours,
		a.created_at, a.updated_at, u.name, u.department
	FROM attendances a
	JOIN users u ON u.id = a.user_id`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Date,
		&a.CheckIn,
		&a.CheckOut,
		&a.Status,
		&a.TotalHours,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.UserName,
		&a.Department,
	)
	return a, err
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendances (id, user_id, date, check_in, check_out, status, total_hours,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.UserID,
		record.Date,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.TotalHours,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, err
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}

	return a, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.user_id = $1 AND a.date = $2`, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &a, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendances
		SET check_in = $1, check_out = $2, status = $3, total_hours = $4, updated_at = NOW()
		WHERE id = $5
	`, record.CheckIn, record.CheckOut, record.Status, record.TotalHours, record.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

func appendAttendanceFilter(query string, args []interface{}, filter attendance.Filter) (string, []interface{}) {
	arg := len(args) + 1
	if filter.UserID != "" {
		query += ` AND a.user_id = $` + strconv.Itoa(arg)
		args = append(args, filter.UserID)
		arg++
	}
	if filter.Department != "" {
		query += ` AND u.department = $` + strconv.Itoa(arg)
		args = append(args, filter.Department)
		arg++
	}
	if filter.Status != "" {
		query += ` AND a.status = $` + strconv.Itoa(arg)
		args = append(args, filter.Status)
		arg++
	}
	if filter.From != "" {
		query += ` AND a.date >= $` + strconv.Itoa(arg)
		args = append(args, filter.From)
		arg++
	}
	if filter.To != "" {
		query += ` AND a.date <= $` + strconv.Itoa(arg)
		args = append(args, filter.To)
	}
	return query, args
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query, args := appendAttendanceFilter(attendanceSelect+` WHERE 1=1`, nil, filter)
	query += ` ORDER BY a.date DESC, u.name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByUser(ctx context.Context, userID string, filter attendance.Filter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query, args := appendAttendanceFilter(attendanceSelect+` WHERE a.user_id = $1`, []interface{}{userID}, attendance.Filter{
		Status: filter.Status,
		From:   filter.From,
		To:     filter.To,
	})
	// History queries have no pagination, cap them instead
	query += ` ORDER BY a.date DESC LIMIT 100`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListRecent implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListRecent(ctx context.Context, userID string, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + ` WHERE a.user_id = $1 ORDER BY a.date DESC LIMIT $2`

	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendances(rows)
}
