package http

import (
	"net/http"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
	TeamSummaries(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

// CheckIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	record, err := a.attendanceService.CheckIn(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", record)
}

// CheckOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	record, err := a.attendanceService.CheckOut(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", record)
}

// Today implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	today, err := a.attendanceService.GetToday(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, today)
}

// ListMy implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	records, err := a.attendanceService.ListMyAttendance(r.Context(), userID, attendanceFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// List implements AttendanceHandler.
func (a *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendanceFilterFromQuery(r)
	filter.UserID = r.URL.Query().Get("user_id")

	records, err := a.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// MySummary implements AttendanceHandler.
func (a *AttendanceHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	q := r.URL.Query()
	summary, err := a.attendanceService.GetMySummary(r.Context(), userID, q.Get("from"), q.Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// TeamSummaries implements AttendanceHandler.
func (a *AttendanceHandlerImpl) TeamSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := a.attendanceService.GetTeamSummaries(r.Context(), attendanceFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summaries)
}

func attendanceFilterFromQuery(r *http.Request) attendance.Filter {
	q := r.URL.Query()
	return attendance.Filter{
		Department: q.Get("department"),
		Status:     q.Get("status"),
		From:       q.Get("from"),
		To:         q.Get("to"),
	}
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}
