package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql/postgresql_test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeaveTestService(t *testing.T, ctx context.Context) (*Service, *postgresql_test.TestDatabaseSetup) {
	t.Helper()

	setup, err := postgresql_test.NewTestDatabase()
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	t.Cleanup(setup.Close)
	require.NoError(t, setup.TruncateAllTables(ctx))

	svc := NewService(
		setup.DB,
		postgresql.NewLeaveTypeRepository(setup.DB),
		postgresql.NewLeaveBalanceRepository(setup.DB),
		postgresql.NewLeaveRequestRepository(setup.DB),
		postgresql.NewUserRepository(setup.DB),
		nil,
	)
	return svc, setup
}

func createLeaveTestUser(t *testing.T, ctx context.Context, setup *postgresql_test.TestDatabaseSetup) string {
	t.Helper()

	userID := uuid.NewString()
	email := fmt.Sprintf("user-%d@example.com", time.Now().UnixNano())
	code := fmt.Sprintf("EMP%d", time.Now().UnixNano()%1000000)

	_, err := setup.DB.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, employee_code, department,
			theme, badges, current_streak, longest_streak, created_at, updated_at)
		VALUES ($1, 'Test User', $2, 'x', 'employee', $3, 'Engineering', 'light', '{}', 0, 0, NOW(), NOW())
	`, userID, email, code)
	require.NoError(t, err)
	return userID
}

func createLeaveTestType(t *testing.T, ctx context.Context, setup *postgresql_test.TestDatabaseSetup, quota float64) string {
	t.Helper()

	typeID := uuid.NewString()
	code := fmt.Sprintf("AL%d", time.Now().UnixNano()%1000000)

	_, err := setup.DB.Exec(ctx, `
		INSERT INTO leave_types (id, name, code, is_active, allow_half_day, requires_attachment,
			max_continuous_days, yearly_quota, carry_forward, max_carry_forward, created_at, updated_at)
		VALUES ($1, 'Annual Leave', $2, true, true, false, 0, $3, false, 0, NOW(), NOW())
	`, typeID, code, quota)
	require.NoError(t, err)
	return typeID
}

func TestLeaveService_Submit_OverlapRejected(t *testing.T) {
	ctx := context.Background()
	svc, setup := newLeaveTestService(t, ctx)

	userID := createLeaveTestUser(t, ctx, setup)
	typeID := createLeaveTestType(t, ctx, setup, 12)

	day := func(offset int) string {
		return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
	}

	first, err := svc.SubmitLeaveRequest(ctx, leave.SubmitLeaveRequest{
		UserID:      userID,
		LeaveTypeID: typeID,
		StartDate:   day(7),
		EndDate:     day(9),
		Reason:      "family trip",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", first.Status)

	_, err = svc.SubmitLeaveRequest(ctx, leave.SubmitLeaveRequest{
		UserID:      userID,
		LeaveTypeID: typeID,
		StartDate:   day(9),
		EndDate:     day(11),
		Reason:      "long weekend",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	// The rejected submit must not leave a reservation behind
	balance, err := svc.LeaveBalanceRepository.GetByUserTypeYear(ctx, userID, typeID, time.Now().AddDate(0, 0, 7).Year())
	require.NoError(t, err)
	assert.Equal(t, first.TotalDays, balance.Pending)
}

func TestLeaveService_EnsureBalance_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, setup := newLeaveTestService(t, ctx)

	userID := createLeaveTestUser(t, ctx, setup)
	typeID := createLeaveTestType(t, ctx, setup, 12)
	year := time.Now().Year()

	leaveType, err := svc.LeaveTypeRepository.GetByID(ctx, typeID)
	require.NoError(t, err)

	first, err := svc.ensureBalance(ctx, userID, leaveType, year)
	require.NoError(t, err)
	assert.Equal(t, 12.0, first.TotalAllocated)

	second, err := svc.ensureBalance(ctx, userID, leaveType, year)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Racing seeds hit the upsert instead of erroring
	raced, err := svc.LeaveBalanceRepository.Create(ctx, leave.LeaveBalance{
		UserID:         userID,
		LeaveTypeID:    typeID,
		Year:           year,
		TotalAllocated: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, raced.ID)

	var count int
	err = setup.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM leave_balances WHERE user_id = $1 AND leave_type_id = $2 AND year = $3`,
		userID, typeID, year).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLeaveService_Reject_RequiresRemarks(t *testing.T) {
	ctx := context.Background()
	svc, setup := newLeaveTestService(t, ctx)

	userID := createLeaveTestUser(t, ctx, setup)
	approverID := createLeaveTestUser(t, ctx, setup)
	typeID := createLeaveTestType(t, ctx, setup, 12)

	submitted, err := svc.SubmitLeaveRequest(ctx, leave.SubmitLeaveRequest{
		UserID:      userID,
		LeaveTypeID: typeID,
		StartDate:   time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		EndDate:     time.Now().AddDate(0, 0, 8).Format("2006-01-02"),
		Reason:      "moving house",
	})
	require.NoError(t, err)

	_, err = svc.RejectLeaveRequest(ctx, leave.ActionLeaveRequest{
		RequestID:  submitted.ID,
		ApproverID: approverID,
	})
	assert.ErrorIs(t, err, leave.ErrRemarksRequired)

	// Without remarks the request stays pending and the reservation stays put
	request, err := svc.LeaveRequestRepository.GetByID(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, request.Status)

	remarks := "insufficient notice"
	rejected, err := svc.RejectLeaveRequest(ctx, leave.ActionLeaveRequest{
		RequestID:  submitted.ID,
		ApproverID: approverID,
		Remarks:    &remarks,
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Request.Status)

	balance, err := svc.LeaveBalanceRepository.GetByUserTypeYear(ctx, userID, typeID, time.Now().AddDate(0, 0, 7).Year())
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance.Pending)
	assert.Equal(t, 0.0, balance.Used)
}
