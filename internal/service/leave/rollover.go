package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
)

// RolloverYear seeds next-year balances for every user and active leave type,
// carrying forward unused days according to each type's policy. Creating a
// balance is idempotent, so running the job twice for the same year is safe.
func (s *Service) RolloverYear(ctx context.Context, fromYear int) error {
	types, err := s.LeaveTypeRepository.List(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to list leave types: %w", err)
	}

	users, err := s.UserRepository.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	var rolled int
	for _, u := range users {
		for _, leaveType := range types {
			var carry float64
			balance, err := s.LeaveBalanceRepository.GetByUserTypeYear(ctx, u.ID, leaveType.ID, fromYear)
			switch err {
			case nil:
				carry = leave.CarryOver(balance, leaveType)
			case leave.ErrBalanceNotFound:
				// No balance last year, nothing to carry.
			default:
				return fmt.Errorf("failed to get leave balance: %w", err)
			}

			if _, err := s.LeaveBalanceRepository.Create(ctx, leave.LeaveBalance{
				UserID:         u.ID,
				LeaveTypeID:    leaveType.ID,
				Year:           fromYear + 1,
				TotalAllocated: leaveType.YearlyQuota,
				CarriedForward: carry,
			}); err != nil {
				return fmt.Errorf("failed to create leave balance: %w", err)
			}
			rolled++
		}
	}

	slog.Info("leave balance rollover complete",
		slog.Int("from_year", fromYear),
		slog.Int("balances", rolled),
	)
	return nil
}
