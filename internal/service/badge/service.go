package badge

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/badge"
	"github.com/staffsync/attendance-backend-go/internal/domain/notification"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
)

// historyLimit caps how much attendance history one evaluation loads. It
// comfortably covers the widest award window.
const historyLimit = 90

// Config holds badge service configuration
type Config struct {
	WorkerCount int // default: 1
	QueueSize   int // default: 256
}

type service struct {
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	notifications  notification.Service
	thresholds     badge.Thresholds

	queue  chan string
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewService creates a badge service with a background evaluation worker.
// Check-in and check-out handlers enqueue work instead of paying the
// evaluation cost inline.
func NewService(
	userRepo user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	notifications notification.Service,
	thresholds badge.Thresholds,
	cfg Config,
) badge.BadgeService {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 1
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}

	s := &service{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		notifications:  notifications,
		thresholds:     thresholds,
		queue:          make(chan string, cfg.QueueSize),
		stopCh:         make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker()
	}

	return s
}

func (s *service) worker() {
	defer s.wg.Done()

	for {
		select {
		case userID := <-s.queue:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, err := s.EvaluateUser(ctx, userID); err != nil {
				slog.Error("badge evaluation failed", "user_id", userID, "error", err)
			}
			cancel()
		case <-s.stopCh:
			return
		}
	}
}

// Enqueue implements badge.BadgeService. Evaluation is best effort; when the
// queue is full the work item is dropped and the next check-in retries.
func (s *service) Enqueue(userID string) {
	select {
	case s.queue <- userID:
	default:
		slog.Warn("badge queue full, dropping evaluation", "user_id", userID)
	}
}

// Stop drains the workers
func (s *service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

// ListDefinitions implements badge.BadgeService.
func (s *service) ListDefinitions(ctx context.Context) []badge.Definition {
	return badge.Definitions(s.thresholds)
}

// GetUserBadges implements badge.BadgeService.
func (s *service) GetUserBadges(ctx context.Context, userID string) (badge.UserBadges, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return badge.UserBadges{}, err
	}

	earned := u.Badges
	if earned == nil {
		earned = []string{}
	}

	return badge.UserBadges{
		Earned:        earned,
		CurrentStreak: u.CurrentStreak,
		LongestStreak: u.LongestStreak,
		Catalogue:     badge.Definitions(s.thresholds),
	}, nil
}

// EvaluateUser implements badge.BadgeService.
func (s *service) EvaluateUser(ctx context.Context, userID string) (badge.Evaluation, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return badge.Evaluation{}, err
	}

	records, err := s.attendanceRepo.ListRecent(ctx, userID, historyLimit)
	if err != nil {
		return badge.Evaluation{}, fmt.Errorf("failed to load attendance history: %w", err)
	}

	eval := badge.Evaluate(records, u.Badges, u.LongestStreak, s.thresholds, time.Now())

	if eval.CurrentStreak != u.CurrentStreak || eval.LongestStreak != u.LongestStreak {
		if err := s.userRepo.UpdateStreaks(ctx, userID, eval.CurrentStreak, eval.LongestStreak); err != nil {
			return badge.Evaluation{}, fmt.Errorf("failed to update streaks: %w", err)
		}
	}

	for _, slug := range eval.NewBadges {
		if err := s.userRepo.AddBadge(ctx, userID, slug); err != nil {
			return badge.Evaluation{}, fmt.Errorf("failed to award badge %s: %w", slug, err)
		}
		s.notifyBadgeEarned(ctx, userID, slug)
	}

	return eval, nil
}

func (s *service) notifyBadgeEarned(ctx context.Context, userID, slug string) {
	if s.notifications == nil {
		return
	}

	name := slug
	for _, def := range badge.Definitions(s.thresholds) {
		if def.Slug == slug {
			name = def.Name
			break
		}
	}

	_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: userID,
		Type:        notification.TypeBadgeEarned,
		Title:       "Badge earned",
		Message:     fmt.Sprintf("You earned the %s badge", name),
		Data:        map[string]interface{}{"badge": slug},
	})
}
