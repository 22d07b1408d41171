package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

const leaveTypeColumns = `id, name, code, description, color, is_active, allow_half_day,
		requires_attachment, max_continuous_days, yearly_quota, carry_forward, max_carry_forward,
		created_at, updated_at`

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var t leave.LeaveType
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Code,
		&t.Description,
		&t.Color,
		&t.IsActive,
		&t.AllowHalfDay,
		&t.RequiresAttachment,
		&t.MaxContinuousDays,
		&t.YearlyQuota,
		&t.CarryForward,
		&t.MaxCarryForward,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	if leaveType.ID == "" {
		leaveType.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO leave_types (id, name, code, description, color, is_active, allow_half_day,
			requires_attachment, max_continuous_days, yearly_quota, carry_forward, max_carry_forward,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING %s
	`, leaveTypeColumns)

	created, err := scanLeaveType(q.QueryRow(ctx, query,
		leaveType.ID,
		leaveType.Name,
		leaveType.Code,
		leaveType.Description,
		leaveType.Color,
		leaveType.IsActive,
		leaveType.AllowHalfDay,
		leaveType.RequiresAttachment,
		leaveType.MaxContinuousDays,
		leaveType.YearlyQuota,
		leaveType.CarryForward,
		leaveType.MaxCarryForward,
	))
	if err != nil {
		return leave.LeaveType{}, err
	}

	return created, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM leave_types WHERE id = $1`, leaveTypeColumns)

	t, err := scanLeaveType(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}

	return t, nil
}

// GetByCode implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByCode(ctx context.Context, code string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM leave_types WHERE code = $1`, leaveTypeColumns)

	t, err := scanLeaveType(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}

	return t, nil
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM leave_types`, leaveTypeColumns)
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		t, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	return types, rows.Err()
}

// Update implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, req leave.UpdateLeaveTypeRequest) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leave_types
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			color = COALESCE($3, color),
			yearly_quota = COALESCE($4, yearly_quota),
			carry_forward = COALESCE($5, carry_forward),
			max_carry_forward = COALESCE($6, max_carry_forward),
			max_continuous_days = COALESCE($7, max_continuous_days),
			allow_half_day = COALESCE($8, allow_half_day),
			requires_attachment = COALESCE($9, requires_attachment),
			is_active = COALESCE($10, is_active),
			updated_at = NOW()
		WHERE id = $11
	`,
		req.Name,
		req.Description,
		req.Color,
		req.YearlyQuota,
		req.CarryForward,
		req.MaxCarryForward,
		req.MaxContinuousDays,
		req.AllowHalfDay,
		req.RequiresAttachment,
		req.IsActive,
		req.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}

	return nil
}

// Delete implements leave.LeaveTypeRepository.
// Types are soft-deleted so historical requests keep their reference.
func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE leave_types SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}

	return nil
}
