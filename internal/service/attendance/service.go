package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/badge"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
)

type Service struct {
	db *database.DB
	attendance.AttendanceRepository
	BadgeService badge.BadgeService
	rules        attendance.Rules
}

func NewService(db *database.DB, attendanceRepository attendance.AttendanceRepository, badgeService badge.BadgeService, rules attendance.Rules) *Service {
	return &Service{
		db:                   db,
		AttendanceRepository: attendanceRepository,
		BadgeService:         badgeService,
		rules:                rules,
	}
}

func todayAt(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// CheckIn implements attendance.AttendanceService. The existence check and
// the insert share a transaction so a double tap cannot create two records.
func (s *Service) CheckIn(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	now := time.Now()

	var created attendance.Attendance
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := s.AttendanceRepository.GetByUserAndDate(txCtx, userID, todayAt(now))
		if err != nil {
			return fmt.Errorf("failed to load today's attendance: %w", err)
		}
		if existing != nil {
			return attendance.ErrAlreadyCheckedIn
		}

		record := attendance.Attendance{UserID: userID}
		if err := record.ApplyCheckIn(now, s.rules); err != nil {
			return err
		}

		created, err = s.AttendanceRepository.Create(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to create attendance record: %w", err)
		}

		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if s.BadgeService != nil {
		s.BadgeService.Enqueue(userID)
	}

	return created.ToResponse(), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *Service) CheckOut(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	now := time.Now()

	record, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, todayAt(now))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}

	if err := record.ApplyCheckOut(now, s.rules); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := s.AttendanceRepository.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	if s.BadgeService != nil {
		s.BadgeService.Enqueue(userID)
	}

	return record.ToResponse(), nil
}

// GetToday implements attendance.AttendanceService.
func (s *Service) GetToday(ctx context.Context, userID string) (attendance.TodayResponse, error) {
	record, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, todayAt(time.Now()))
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if record == nil {
		return attendance.TodayResponse{}, nil
	}

	resp := record.ToResponse()
	return attendance.TodayResponse{
		CheckedIn:  true,
		CheckedOut: record.CheckOut != nil,
		Record:     &resp,
	}, nil
}

// ListMyAttendance implements attendance.AttendanceService.
func (s *Service) ListMyAttendance(ctx context.Context, userID string, filter attendance.Filter) ([]attendance.AttendanceResponse, error) {
	records, err := s.AttendanceRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return toResponses(records), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *Service) ListAttendance(ctx context.Context, filter attendance.Filter) ([]attendance.AttendanceResponse, error) {
	records, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return toResponses(records), nil
}

// GetMySummary implements attendance.AttendanceService.
func (s *Service) GetMySummary(ctx context.Context, userID string, from, to string) (attendance.Summary, error) {
	records, err := s.AttendanceRepository.ListByUser(ctx, userID, attendance.Filter{From: from, To: to})
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	summary := summarize(records)
	summary.UserID = userID
	if len(records) > 0 {
		summary.UserName = records[0].UserName
		summary.Department = records[0].Department
	}

	return summary, nil
}

// GetTeamSummaries implements attendance.AttendanceService.
func (s *Service) GetTeamSummaries(ctx context.Context, filter attendance.Filter) ([]attendance.Summary, error) {
	records, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	grouped := make(map[string][]attendance.Attendance)
	order := make([]string, 0)
	for i := range records {
		userID := records[i].UserID
		if _, ok := grouped[userID]; !ok {
			order = append(order, userID)
		}
		grouped[userID] = append(grouped[userID], records[i])
	}

	summaries := make([]attendance.Summary, 0, len(order))
	for _, userID := range order {
		userRecords := grouped[userID]
		summary := summarize(userRecords)
		summary.UserID = userID
		summary.UserName = userRecords[0].UserName
		summary.Department = userRecords[0].Department
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func summarize(records []attendance.Attendance) attendance.Summary {
	var summary attendance.Summary
	worked := 0
	for i := range records {
		switch records[i].Status {
		case attendance.StatusPresent:
			summary.PresentDays++
		case attendance.StatusLate:
			summary.LateDays++
		case attendance.StatusHalfDay:
			summary.HalfDays++
		case attendance.StatusOnLeave:
			summary.LeaveDays++
		}
		if records[i].CheckOut != nil {
			summary.TotalHours += records[i].TotalHours
			worked++
		}
	}
	if worked > 0 {
		summary.AverageHours = round2(summary.TotalHours / float64(worked))
	}
	summary.TotalHours = round2(summary.TotalHours)
	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, records[i].ToResponse())
	}
	return responses
}
