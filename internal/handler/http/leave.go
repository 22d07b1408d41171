package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/handler/http/response"
	"github.com/staffsync/attendance-backend-go/internal/service/file"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	GetType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	GetMyBalances(w http.ResponseWriter, r *http.Request)
	GetUserBalances(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	HoldRequest(w http.ResponseWriter, r *http.Request)

	TodayLeave(w http.ResponseWriter, r *http.Request)
	UploadAttachment(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	fileService  file.FileService
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := l.leaveService.CreateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created", created)
}

// UpdateType implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	typeID := chi.URLParam(r, "id")
	if typeID == "" {
		response.BadRequest(w, "Leave type ID is required", nil)
		return
	}

	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = typeID

	if err := l.leaveService.UpdateLeaveType(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated", nil)
}

// GetType implements LeaveHandler.
func (l *LeaveHandlerImpl) GetType(w http.ResponseWriter, r *http.Request) {
	typeID := chi.URLParam(r, "id")
	if typeID == "" {
		response.BadRequest(w, "Leave type ID is required", nil)
		return
	}

	leaveType, err := l.leaveService.GetLeaveType(r.Context(), typeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveType)
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	activeOnly := getBoolQueryParam(r, "active_only", true)

	types, err := l.leaveService.ListLeaveTypes(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// DeleteType implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	typeID := chi.URLParam(r, "id")
	if typeID == "" {
		response.BadRequest(w, "Leave type ID is required", nil)
		return
	}

	if err := l.leaveService.DeleteLeaveType(r.Context(), typeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deactivated", nil)
}

// GetMyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	year := getIntQueryParam(r, "year", time.Now().Year())

	balances, err := l.leaveService.GetMyBalances(r.Context(), userID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// GetUserBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetUserBalances(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	year := getIntQueryParam(r, "year", time.Now().Year())

	balances, err := l.leaveService.GetUserBalances(r.Context(), userID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	created, err := l.leaveService.SubmitLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", created)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := leave.LeaveRequestFilter{Status: r.URL.Query().Get("status")}

	requests, err := l.leaveService.ListMyLeaveRequests(r.Context(), userID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := leave.LeaveRequestFilter{
		Status:     q.Get("status"),
		UserID:     q.Get("user_id"),
		Department: q.Get("department"),
	}

	requests, err := l.leaveService.ListLeaveRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := l.leaveService.GetLeaveRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	l.action(w, r, l.leaveService.ApproveLeaveRequest, "Leave request approved")
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	l.action(w, r, l.leaveService.RejectLeaveRequest, "Leave request rejected")
}

// HoldRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) HoldRequest(w http.ResponseWriter, r *http.Request) {
	l.action(w, r, l.leaveService.HoldLeaveRequest, "Leave request put on hold")
}

func (l *LeaveHandlerImpl) action(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, req leave.ActionLeaveRequest) (leave.ActionLeaveResponse, error),
	message string,
) {
	approverID := getUserIDFromContext(r)
	if approverID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	var req leave.ActionLeaveRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.RequestID = requestID
	req.ApproverID = approverID

	result, err := fn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

// TodayLeave implements LeaveHandler.
func (l *LeaveHandlerImpl) TodayLeave(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	request, err := l.leaveService.GetTodayLeave(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"on_leave": request != nil,
		"request":  request,
	})
}

// UploadAttachment implements LeaveHandler.
func (l *LeaveHandlerImpl) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	attachment, fileHeader, err := r.FormFile("attachment")
	if err != nil {
		response.BadRequest(w, "attachment file is required", nil)
		return
	}
	defer attachment.Close()

	url, err := l.fileService.UploadLeaveAttachment(r.Context(), userID, attachment, fileHeader.Filename)
	if err != nil {
		slog.Error("UploadAttachment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attachment uploaded", map[string]string{"url": url})
}

// Calendar implements LeaveHandler.
func (l *LeaveHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	entries, err := l.leaveService.GetTeamCalendar(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

func NewLeaveHandler(leaveService leave.LeaveService, fileService file.FileService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		fileService:  fileService,
	}
}
