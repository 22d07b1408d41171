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

const leaveBalanceColumns = `id, user_id, leave_type_id, year, total_allocated, carried_forward,
		used, pending, created_at, updated_at`

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.LeaveTypeID,
		&b.Year,
		&b.TotalAllocated,
		&b.CarriedForward,
		&b.Used,
		&b.Pending,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

// Create implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	if balance.ID == "" {
		balance.ID = uuid.NewString()
	}

	// ON CONFLICT keeps lazy seeding idempotent when two requests race
	query := fmt.Sprintf(`
		INSERT INTO leave_balances (id, user_id, leave_type_id, year, total_allocated,
			carried_forward, used, pending, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (user_id, leave_type_id, year) DO UPDATE SET updated_at = NOW()
		RETURNING %s
	`, leaveBalanceColumns)

	created, err := scanLeaveBalance(q.QueryRow(ctx, query,
		balance.ID,
		balance.UserID,
		balance.LeaveTypeID,
		balance.Year,
		balance.TotalAllocated,
		balance.CarriedForward,
		balance.Used,
		balance.Pending,
	))
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return created, nil
}

// GetByUserTypeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByUserTypeYear(ctx context.Context, userID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM leave_balances
		WHERE user_id = $1 AND leave_type_id = $2 AND year = $3
	`, leaveBalanceColumns)

	b, err := scanLeaveBalance(q.QueryRow(ctx, query, userID, leaveTypeID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}

	return b, nil
}

// GetByUserYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByUserYear(ctx context.Context, userID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.user_id, b.leave_type_id, b.year, b.total_allocated, b.carried_forward,
			b.used, b.pending, b.created_at, b.updated_at, t.name
		FROM leave_balances b
		JOIN leave_types t ON t.id = b.leave_type_id
		WHERE b.user_id = $1 AND b.year = $2
		ORDER BY t.name
	`

	rows, err := q.Query(ctx, query, userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		var b leave.LeaveBalance
		err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.LeaveTypeID,
			&b.Year,
			&b.TotalAllocated,
			&b.CarriedForward,
			&b.Used,
			&b.Pending,
			&b.CreatedAt,
			&b.UpdatedAt,
			&b.LeaveTypeName,
		)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

// Save implements leave.LeaveBalanceRepository.
// The WHERE clause re-checks the ledger invariant so concurrent writers can
// never drive pending or used negative.
func (r *leaveBalanceRepositoryImpl) Save(ctx context.Context, balance leave.LeaveBalance) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leave_balances
		SET used = $1, pending = $2, updated_at = NOW()
		WHERE id = $3 AND $1 >= 0 AND $2 >= 0
	`, balance.Used, balance.Pending, balance.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInvalidState
	}

	return nil
}
