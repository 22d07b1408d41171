package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/report"
	"github.com/staffsync/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportAttendance(w http.ResponseWriter, r *http.Request)
	LeaveAnalytics(w http.ResponseWriter, r *http.Request)
	MyLeaveAnalytics(w http.ResponseWriter, r *http.Request)
	ExportLeave(w http.ResponseWriter, r *http.Request)
	EmployeeDashboard(w http.ResponseWriter, r *http.Request)
	ManagerDashboard(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

// ExportAttendance implements ReportHandler.
func (h *ReportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := attendance.Filter{
		UserID:     q.Get("user_id"),
		Department: q.Get("department"),
		Status:     q.Get("status"),
		From:       q.Get("from"),
		To:         q.Get("to"),
	}

	data, err := h.reportService.ExportAttendanceCSV(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s.csv", time.Now().Format("2006-01-02"))
	response.CSV(w, filename, data)
}

// LeaveAnalytics implements ReportHandler.
func (h *ReportHandlerImpl) LeaveAnalytics(w http.ResponseWriter, r *http.Request) {
	year := getIntQueryParam(r, "year", time.Now().Year())

	analytics, err := h.reportService.GetLeaveAnalytics(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, analytics)
}

// MyLeaveAnalytics implements ReportHandler.
func (h *ReportHandlerImpl) MyLeaveAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	year := getIntQueryParam(r, "year", time.Now().Year())

	analytics, err := h.reportService.GetEmployeeLeaveAnalytics(r.Context(), userID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, analytics)
}

// ExportLeave implements ReportHandler. Returns CSV when format=csv,
// otherwise the matching requests as JSON.
func (h *ReportHandlerImpl) ExportLeave(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := leave.LeaveRequestFilter{
		Status:     q.Get("status"),
		Department: q.Get("department"),
	}
	if from, err := time.Parse("2006-01-02", q.Get("from")); err == nil {
		filter.From = from
	}
	if to, err := time.Parse("2006-01-02", q.Get("to")); err == nil {
		filter.To = to
	}

	if q.Get("format") == "csv" {
		data, err := h.reportService.ExportLeaveCSV(r.Context(), filter)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		filename := fmt.Sprintf("leave-report-%s.csv", time.Now().Format("2006-01-02"))
		response.CSV(w, filename, data)
		return
	}

	requests, err := h.reportService.ListLeaveExport(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// EmployeeDashboard implements ReportHandler.
func (h *ReportHandlerImpl) EmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	dashboard, err := h.reportService.GetEmployeeDashboard(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}

// ManagerDashboard implements ReportHandler.
func (h *ReportHandlerImpl) ManagerDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reportService.GetManagerDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}
