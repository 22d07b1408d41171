package postgresql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

const leaveRequestSelect = `
	SELECT r.id, r.user_id, r.leave_type_id, r.start_date, r.end_date, r.half_day, r.total_days,
		r.reason, r.attachment_url, r.status, r.approver_id, r.action_at, r.remarks,
		r.created_at, r.updated_at, t.name, u.name, u.department
	FROM leave_requests r
	JOIN leave_types t ON t.id = r.leave_type_id
	JOIN users u ON u.id = r.user_id`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.LeaveTypeID,
		&req.StartDate,
		&req.EndDate,
		&req.HalfDay,
		&req.TotalDays,
		&req.Reason,
		&req.AttachmentURL,
		&req.Status,
		&req.ApproverID,
		&req.ActionAt,
		&req.Remarks,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.LeaveTypeName,
		&req.UserName,
		&req.Department,
	)
	return req, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.Status == "" {
		request.Status = leave.LeaveRequestStatusPending
	}

	query := `
		INSERT INTO leave_requests (id, user_id, leave_type_id, start_date, end_date, half_day,
			total_days, reason, attachment_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID,
		request.UserID,
		request.LeaveTypeID,
		request.StartDate,
		request.EndDate,
		request.HalfDay,
		request.TotalDays,
		request.Reason,
		request.AttachmentURL,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	req, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return req, nil
}

// ListByUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByUser(ctx context.Context, userID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + ` WHERE r.user_id = $1`
	args := []interface{}{userID}
	if filter.Status != "" {
		query += ` AND r.status = $2`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + ` WHERE 1=1`
	args := []interface{}{}
	arg := 1
	if filter.Status != "" {
		query += ` AND r.status = $` + strconv.Itoa(arg)
		args = append(args, filter.Status)
		arg++
	}
	if filter.UserID != "" {
		query += ` AND r.user_id = $` + strconv.Itoa(arg)
		args = append(args, filter.UserID)
		arg++
	}
	if filter.Department != "" {
		query += ` AND u.department = $` + strconv.Itoa(arg)
		args = append(args, filter.Department)
		arg++
	}
	if !filter.From.IsZero() {
		query += ` AND r.end_date >= $` + strconv.Itoa(arg)
		args = append(args, filter.From)
		arg++
	}
	if !filter.To.IsZero() {
		query += ` AND r.start_date <= $` + strconv.Itoa(arg)
		args = append(args, filter.To)
		arg++
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// ListOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListOverlapping(ctx context.Context, userID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + `
		WHERE r.user_id = $1
			AND r.status IN ('pending', 'on_hold', 'approved')
			AND r.start_date <= $3 AND r.end_date >= $2
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// ListDepartmentApprovedInRange implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListDepartmentApprovedInRange(ctx context.Context, department, excludeUserID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + `
		WHERE u.department = $1
			AND r.user_id != $2
			AND r.status = 'approved'
			AND r.start_date <= $4 AND r.end_date >= $3
	`

	rows, err := q.Query(ctx, query, department, excludeUserID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// ListApprovedInRange implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedInRange(ctx context.Context, start, end time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + `
		WHERE r.status = 'approved'
			AND r.start_date <= $2 AND r.end_date >= $1
		ORDER BY r.start_date
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, approverID string, remarks *string, actionAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $1, approver_id = $2, remarks = $3, action_at = $4, updated_at = NOW()
		WHERE id = $5
	`, status, approverID, remarks, actionAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}
