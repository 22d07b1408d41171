package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/notification"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
)

type Service struct {
	db *database.DB
	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	leave.LeaveRequestRepository
	UserRepository      user.UserRepository
	NotificationService notification.Service
}

func NewService(
	db *database.DB,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	userRepository user.UserRepository,
	notificationService notification.Service,
) *Service {
	return &Service{
		db:                     db,
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
		LeaveRequestRepository: leaveRequestRepository,
		UserRepository:         userRepository,
		NotificationService:    notificationService,
	}
}

// CreateLeaveType implements leave.LeaveService.
func (s *Service) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	if _, err := s.LeaveTypeRepository.GetByCode(ctx, req.Code); err == nil {
		return leave.LeaveTypeResponse{}, leave.ErrLeaveTypeCodeExists
	}

	created, err := s.LeaveTypeRepository.Create(ctx, leave.LeaveType{
		Name:               req.Name,
		Code:               req.Code,
		Description:        req.Description,
		Color:              req.Color,
		IsActive:           true,
		AllowHalfDay:       req.AllowHalfDay,
		RequiresAttachment: req.RequiresAttachment,
		MaxContinuousDays:  req.MaxContinuousDays,
		YearlyQuota:        req.YearlyQuota,
		CarryForward:       req.CarryForward,
		MaxCarryForward:    req.MaxCarryForward,
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return created.ToResponse(), nil
}

// UpdateLeaveType implements leave.LeaveService.
func (s *Service) UpdateLeaveType(ctx context.Context, req leave.UpdateLeaveTypeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.LeaveTypeRepository.Update(ctx, req); err != nil {
		return fmt.Errorf("failed to update leave type: %w", err)
	}

	return nil
}

// GetLeaveType implements leave.LeaveService.
func (s *Service) GetLeaveType(ctx context.Context, id string) (leave.LeaveTypeResponse, error) {
	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	return leaveType.ToResponse(), nil
}

// ListLeaveTypes implements leave.LeaveService.
func (s *Service) ListLeaveTypes(ctx context.Context, activeOnly bool) ([]leave.LeaveTypeResponse, error) {
	types, err := s.LeaveTypeRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(types))
	for i := range types {
		responses = append(responses, types[i].ToResponse())
	}

	return responses, nil
}

// DeleteLeaveType implements leave.LeaveService.
func (s *Service) DeleteLeaveType(ctx context.Context, id string) error {
	if err := s.LeaveTypeRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete leave type: %w", err)
	}

	return nil
}

// ensureBalance returns the user's ledger row for the type and year, seeding
// it from the type's yearly quota on first touch.
func (s *Service) ensureBalance(ctx context.Context, userID string, leaveType leave.LeaveType, year int) (leave.LeaveBalance, error) {
	balance, err := s.LeaveBalanceRepository.GetByUserTypeYear(ctx, userID, leaveType.ID, year)
	if err == nil {
		return balance, nil
	}
	if err != leave.ErrBalanceNotFound {
		return leave.LeaveBalance{}, err
	}

	created, err := s.LeaveBalanceRepository.Create(ctx, leave.LeaveBalance{
		UserID:         userID,
		LeaveTypeID:    leaveType.ID,
		Year:           year,
		TotalAllocated: leaveType.YearlyQuota,
	})
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to seed leave balance: %w", err)
	}

	return created, nil
}

// GetMyBalances implements leave.LeaveService.
func (s *Service) GetMyBalances(ctx context.Context, userID string, year int) ([]leave.LeaveBalanceResponse, error) {
	return s.GetUserBalances(ctx, userID, year)
}

// GetUserBalances implements leave.LeaveService.
func (s *Service) GetUserBalances(ctx context.Context, userID string, year int) ([]leave.LeaveBalanceResponse, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	// Seed any rows missing for active types so the listing is complete
	types, err := s.LeaveTypeRepository.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	for i := range types {
		if _, err := s.ensureBalance(ctx, userID, types[i], year); err != nil {
			return nil, err
		}
	}

	balances, err := s.LeaveBalanceRepository.GetByUserYear(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	responses := make([]leave.LeaveBalanceResponse, 0, len(balances))
	for i := range balances {
		responses = append(responses, balances[i].ToResponse())
	}

	return responses, nil
}

// SubmitLeaveRequest implements leave.LeaveService. The validations run
// against live data and the reservation is written atomically with the
// request row, so a crash can never leave days reserved without a request.
func (s *Service) SubmitLeaveRequest(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, endDate, err := req.ParsedDates()
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse request dates: %w", err)
	}
	if endDate.Before(startDate) {
		return leave.LeaveRequestResponse{}, leave.ErrDateRange
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, startDate.Location())
	if startDate.Before(today) {
		return leave.LeaveRequestResponse{}, leave.ErrDateRange
	}
	if req.HalfDay && !startDate.Equal(endDate) {
		return leave.LeaveRequestResponse{}, leave.ErrHalfDaySpansMultipleDays
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !leaveType.IsActive {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeInactive
	}
	if req.HalfDay && !leaveType.AllowHalfDay {
		return leave.LeaveRequestResponse{}, leave.ErrHalfDayNotAllowed
	}
	if leaveType.RequiresAttachment && (req.AttachmentURL == nil || *req.AttachmentURL == "") {
		return leave.LeaveRequestResponse{}, leave.ErrAttachmentRequired
	}

	totalDays := leave.TotalDays(startDate, endDate, req.HalfDay)
	if leaveType.MaxContinuousDays > 0 && totalDays > float64(leaveType.MaxContinuousDays) {
		return leave.LeaveRequestResponse{}, leave.ErrExceedsMaxContinuousDays
	}

	var created leave.LeaveRequest
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		overlapping, err := s.LeaveRequestRepository.ListOverlapping(txCtx, req.UserID, startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave requests: %w", err)
		}
		if len(overlapping) > 0 {
			return leave.ErrOverlappingLeave
		}

		balance, err := s.ensureBalance(txCtx, req.UserID, leaveType, startDate.Year())
		if err != nil {
			return err
		}
		if balance.Available() < totalDays {
			return leave.ErrInsufficientBalance
		}

		if err := balance.Apply(leave.ActionReserve, totalDays); err != nil {
			return err
		}
		if err := s.LeaveBalanceRepository.Save(txCtx, balance); err != nil {
			return fmt.Errorf("failed to reserve leave balance: %w", err)
		}

		created, err = s.LeaveRequestRepository.Create(txCtx, leave.LeaveRequest{
			UserID:        req.UserID,
			LeaveTypeID:   leaveType.ID,
			StartDate:     startDate,
			EndDate:       endDate,
			HalfDay:       req.HalfDay,
			TotalDays:     totalDays,
			Reason:        req.Reason,
			AttachmentURL: req.AttachmentURL,
			Status:        leave.LeaveRequestStatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}

		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created.LeaveTypeName = &leaveType.Name
	s.notifyManagers(ctx, created, leaveType.Name)

	return created.ToResponse(), nil
}

// action runs one state-machine transition plus its ledger move inside a
// single transaction and returns the updated request.
func (s *Service) action(ctx context.Context, req leave.ActionLeaveRequest, target leave.LeaveRequestStatus) (leave.LeaveRequest, error) {
	var updated leave.LeaveRequest

	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err := s.LeaveRequestRepository.GetByID(txCtx, req.RequestID)
		if err != nil {
			return err
		}
		if !request.CanTransition(target) {
			return leave.ErrInvalidTransition
		}

		// On-hold leaves the reservation untouched
		if target == leave.LeaveRequestStatusApproved || target == leave.LeaveRequestStatusRejected {
			balance, err := s.LeaveBalanceRepository.GetByUserTypeYear(txCtx, request.UserID, request.LeaveTypeID, request.StartDate.Year())
			if err != nil {
				return err
			}

			move := leave.ActionCommit
			if target == leave.LeaveRequestStatusRejected {
				move = leave.ActionRelease
			}
			if err := balance.Apply(move, request.TotalDays); err != nil {
				return err
			}
			if err := s.LeaveBalanceRepository.Save(txCtx, balance); err != nil {
				return fmt.Errorf("failed to update leave balance: %w", err)
			}
		}

		actionAt := time.Now()
		if err := s.LeaveRequestRepository.UpdateStatus(txCtx, request.ID, target, req.ApproverID, req.Remarks, actionAt); err != nil {
			return fmt.Errorf("failed to update leave request status: %w", err)
		}

		request.Status = target
		request.ApproverID = &req.ApproverID
		request.ActionAt = &actionAt
		request.Remarks = req.Remarks
		updated = request

		return nil
	})

	return updated, err
}

// ApproveLeaveRequest implements leave.LeaveService.
func (s *Service) ApproveLeaveRequest(ctx context.Context, req leave.ActionLeaveRequest) (leave.ActionLeaveResponse, error) {
	updated, err := s.action(ctx, req, leave.LeaveRequestStatusApproved)
	if err != nil {
		return leave.ActionLeaveResponse{}, err
	}

	resp := leave.ActionLeaveResponse{Request: updated.ToResponse()}
	resp.ConflictWarning = s.departmentConflictWarning(ctx, updated)

	s.notifyRequester(ctx, updated, notification.TypeLeaveApproved, "Leave approved",
		fmt.Sprintf("Your leave from %s to %s has been approved",
			updated.StartDate.Format("2006-01-02"), updated.EndDate.Format("2006-01-02")))

	return resp, nil
}

// RejectLeaveRequest implements leave.LeaveService.
func (s *Service) RejectLeaveRequest(ctx context.Context, req leave.ActionLeaveRequest) (leave.ActionLeaveResponse, error) {
	if req.Remarks == nil || *req.Remarks == "" {
		return leave.ActionLeaveResponse{}, leave.ErrRemarksRequired
	}

	updated, err := s.action(ctx, req, leave.LeaveRequestStatusRejected)
	if err != nil {
		return leave.ActionLeaveResponse{}, err
	}

	s.notifyRequester(ctx, updated, notification.TypeLeaveRejected, "Leave rejected",
		fmt.Sprintf("Your leave request was rejected: %s", *req.Remarks))

	return leave.ActionLeaveResponse{Request: updated.ToResponse()}, nil
}

// HoldLeaveRequest implements leave.LeaveService.
func (s *Service) HoldLeaveRequest(ctx context.Context, req leave.ActionLeaveRequest) (leave.ActionLeaveResponse, error) {
	updated, err := s.action(ctx, req, leave.LeaveRequestStatusOnHold)
	if err != nil {
		return leave.ActionLeaveResponse{}, err
	}

	s.notifyRequester(ctx, updated, notification.TypeLeaveOnHold, "Leave on hold",
		"Your leave request has been put on hold")

	return leave.ActionLeaveResponse{Request: updated.ToResponse()}, nil
}

// GetLeaveRequest implements leave.LeaveService.
func (s *Service) GetLeaveRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return request.ToResponse(), nil
}

// GetTodayLeave implements leave.LeaveService.
func (s *Service) GetTodayLeave(ctx context.Context, userID string) (*leave.LeaveRequestResponse, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	requests, err := s.LeaveRequestRepository.ListOverlapping(ctx, userID, today, today)
	if err != nil {
		return nil, fmt.Errorf("failed to check today's leave: %w", err)
	}

	for i := range requests {
		if requests[i].Status == leave.LeaveRequestStatusApproved {
			resp := requests[i].ToResponse()
			return &resp, nil
		}
	}

	return nil, nil
}

// ListMyLeaveRequests implements leave.LeaveService.
func (s *Service) ListMyLeaveRequests(ctx context.Context, userID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return toResponses(requests), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (s *Service) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return toResponses(requests), nil
}

// GetTeamCalendar implements leave.LeaveService. Month is "YYYY-MM";
// an empty month means the current one.
func (s *Service) GetTeamCalendar(ctx context.Context, month string) ([]leave.CalendarEntry, error) {
	var start time.Time
	if month == "" {
		now := time.Now()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		var err error
		start, err = time.Parse("2006-01", month)
		if err != nil {
			return nil, fmt.Errorf("failed to parse month: %w", err)
		}
	}
	end := start.AddDate(0, 1, -1)

	requests, err := s.LeaveRequestRepository.ListApprovedInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leaves: %w", err)
	}

	types, err := s.LeaveTypeRepository.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	colors := make(map[string]*string, len(types))
	for i := range types {
		colors[types[i].ID] = types[i].Color
	}

	entries := make([]leave.CalendarEntry, 0, len(requests))
	for i := range requests {
		r := &requests[i]
		entries = append(entries, leave.CalendarEntry{
			RequestID:     r.ID,
			UserID:        r.UserID,
			UserName:      r.UserName,
			Department:    r.Department,
			LeaveTypeName: r.LeaveTypeName,
			Color:         colors[r.LeaveTypeID],
			StartDate:     r.StartDate.Format("2006-01-02"),
			EndDate:       r.EndDate.Format("2006-01-02"),
			HalfDay:       r.HalfDay,
		})
	}

	return entries, nil
}

// departmentConflictWarning reports other approved leave in the same
// department that intersects the request. Advisory only.
func (s *Service) departmentConflictWarning(ctx context.Context, request leave.LeaveRequest) *string {
	if request.Department == nil {
		return nil
	}

	conflicts, err := s.LeaveRequestRepository.ListDepartmentApprovedInRange(ctx, *request.Department, request.UserID, request.StartDate, request.EndDate)
	if err != nil || len(conflicts) == 0 {
		return nil
	}

	warning := fmt.Sprintf("%d other approved leave(s) in %s overlap this period", len(conflicts), *request.Department)
	return &warning
}

func (s *Service) notifyManagers(ctx context.Context, request leave.LeaveRequest, leaveTypeName string) {
	if s.NotificationService == nil {
		return
	}

	managers, err := s.UserRepository.ListManagers(ctx)
	if err != nil {
		return
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(managers))
	for i := range managers {
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: managers[i].ID,
			SenderID:    &request.UserID,
			Type:        notification.TypeLeaveRequested,
			Title:       "New leave request",
			Message: fmt.Sprintf("%s leave requested from %s to %s", leaveTypeName,
				request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02")),
			Data: map[string]interface{}{"request_id": request.ID},
		})
	}

	_ = s.NotificationService.QueueBulkNotification(ctx, reqs)
}

func (s *Service) notifyRequester(ctx context.Context, request leave.LeaveRequest, notifType notification.NotificationType, title, message string) {
	if s.NotificationService == nil {
		return
	}

	_ = s.NotificationService.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: request.UserID,
		SenderID:    request.ApproverID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		Data:        map[string]interface{}{"request_id": request.ID},
	})
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, requests[i].ToResponse())
	}
	return responses
}
