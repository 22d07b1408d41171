package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/staffsync/attendance-backend-go/internal/config"
	"github.com/staffsync/attendance-backend-go/internal/handler/http/middleware"
	"github.com/staffsync/attendance-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Profile      ProfileHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Badge        BadgeHandler
	Notification NotificationHandler
	Report       ReportHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffsync-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		// Token validated inside the handler, SSE cannot send headers
		r.Get("/notifications/stream", h.Notification.Stream)

		// Uploaded files (profile pictures, leave attachments)
		fileServer := http.StripPrefix("/api/v1/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath)))
		r.Get("/uploads/*", fileServer.ServeHTTP)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.Profile.Get)
				r.Put("/", h.Profile.Update)
				r.Put("/theme", h.Profile.UpdateTheme)
				r.Post("/picture", h.Profile.UploadPicture)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/today", h.Attendance.Today)
				r.Get("/my", h.Attendance.ListMy)
				r.Get("/my/summary", h.Attendance.MySummary)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", h.Attendance.List)
					r.Get("/summaries", h.Attendance.TeamSummaries)
					r.Get("/export", h.Report.ExportAttendance)
				})
			})

			r.Route("/leave-types", func(r chi.Router) {
				r.Get("/", h.Leave.ListTypes)
				r.Get("/{id}", h.Leave.GetType)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Leave.CreateType)
					r.Put("/{id}", h.Leave.UpdateType)
					r.Delete("/{id}", h.Leave.DeleteType)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/requests", h.Leave.CreateRequest)
				r.Get("/requests/my", h.Leave.GetMyRequests)
				r.Get("/requests/{id}", h.Leave.GetRequest)
				r.Get("/today", h.Leave.TodayLeave)
				r.Get("/balances/my", h.Leave.GetMyBalances)
				r.Post("/attachments", h.Leave.UploadAttachment)
				r.Get("/calendar", h.Leave.Calendar)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/requests", h.Leave.ListRequests)
					r.Post("/requests/{id}/approve", h.Leave.ApproveRequest)
					r.Post("/requests/{id}/reject", h.Leave.RejectRequest)
					r.Post("/requests/{id}/hold", h.Leave.HoldRequest)
					r.Get("/balances/{userID}", h.Leave.GetUserBalances)
				})
			})

			r.Route("/badges", func(r chi.Router) {
				r.Get("/", h.Badge.ListDefinitions)
				r.Get("/my", h.Badge.GetMyBadges)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/evaluate/{userID}", h.Badge.EvaluateUser)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/mark-read", h.Notification.MarkAsRead)
				r.Post("/mark-all-read", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
				r.Get("/sse-token", h.Notification.GetSSEToken)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", h.Report.EmployeeDashboard)
				r.Get("/analytics/leave/my", h.Report.MyLeaveAnalytics)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/manager", h.Report.ManagerDashboard)
					r.Get("/analytics/leave", h.Report.LeaveAnalytics)
					r.Get("/analytics/leave/export", h.Report.ExportLeave)
				})
			})
		})
	})

	return r
}
