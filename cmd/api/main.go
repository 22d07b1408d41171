package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/config"
	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/badge"
	appHTTP "github.com/staffsync/attendance-backend-go/internal/handler/http"
	"github.com/staffsync/attendance-backend-go/internal/pkg/cron"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffsync/attendance-backend-go/internal/pkg/sse"
	"github.com/staffsync/attendance-backend-go/internal/pkg/storage"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffsync/attendance-backend-go/internal/service/attendance"
	authService "github.com/staffsync/attendance-backend-go/internal/service/auth"
	badgeService "github.com/staffsync/attendance-backend-go/internal/service/badge"
	"github.com/staffsync/attendance-backend-go/internal/service/file"
	leaveService "github.com/staffsync/attendance-backend-go/internal/service/leave"
	notificationService "github.com/staffsync/attendance-backend-go/internal/service/notification"
	reportService "github.com/staffsync/attendance-backend-go/internal/service/report"
	userService "github.com/staffsync/attendance-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileSvc := file.NewFileService(fileStorage)

	hub := sse.NewHub()
	notifSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})

	thresholds := badge.Thresholds{
		OnTimeStreakDays:    cfg.Badges.OnTimeStreakDays,
		PerfectMonthMinDays: cfg.Badges.PerfectMonthMinDays,
		EarlyBirdHour:       cfg.Badges.EarlyBirdHour,
		EarlyBirdCount:      cfg.Badges.EarlyBirdCount,
		PunctualityWindow:   cfg.Badges.PunctualityWindow,
		PunctualityMinDays:  cfg.Badges.PunctualityMinDays,
	}
	badgeSvc := badgeService.NewService(userRepo, attendanceRepo, notifSvc, thresholds, badgeService.Config{})

	rules := attendance.Rules{
		WorkStart:    cfg.Attendance.WorkStartTime,
		HalfDayHours: cfg.Attendance.HalfDayHours,
	}
	attendanceSvc := attendanceService.NewService(db, attendanceRepo, badgeSvc, rules)
	authSvc := authService.NewService(db, jwtSvc, userRepo)
	leaveSvc := leaveService.NewService(db, leaveTypeRepo, leaveBalanceRepo, leaveRequestRepo, userRepo, notifSvc)
	userSvc := userService.NewService(userRepo, fileSvc)
	reportSvc := reportService.NewService(reportRepo, attendanceRepo, leaveBalanceRepo, leaveRequestRepo, userRepo)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("leave-balance-rollover", 24*time.Hour, func(ctx context.Context) error {
		// Only does real work in the new year, creating balances is idempotent
		now := time.Now()
		if now.Month() != time.January {
			return nil
		}
		return leaveSvc.RolloverYear(ctx, now.Year()-1)
	})
	scheduler.Start()

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		Profile:      appHTTP.NewProfileHandler(userSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc, fileSvc),
		Badge:        appHTTP.NewBadgeHandler(badgeSvc),
		Notification: appHTTP.NewNotificationHandler(notifSvc, jwtSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
	}

	router := appHTTP.NewRouter(cfg, jwtSvc, handlers)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: addr, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}

	scheduler.Stop()
	badgeSvc.Stop()
	notifSvc.Stop()
}
