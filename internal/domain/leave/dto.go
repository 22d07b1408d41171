package leave

import (
	"time"

	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

// CreateLeaveTypeRequest represents request to create a new leave type
type CreateLeaveTypeRequest struct {
	Name               string  `json:"name"`
	Code               string  `json:"code"`
	Description        *string `json:"description,omitempty"`
	Color              *string `json:"color,omitempty"`
	YearlyQuota        float64 `json:"yearly_quota"`
	CarryForward       bool    `json:"carry_forward"`
	MaxCarryForward    float64 `json:"max_carry_forward"`
	MaxContinuousDays  int     `json:"max_continuous_days"`
	AllowHalfDay       bool    `json:"allow_half_day"`
	RequiresAttachment bool    `json:"requires_attachment"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}
	if r.YearlyQuota < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "yearly_quota",
			Message: "yearly_quota must not be negative",
		})
	}
	if r.MaxCarryForward < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_carry_forward",
			Message: "max_carry_forward must not be negative",
		})
	}
	if r.MaxContinuousDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_continuous_days",
			Message: "max_continuous_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateLeaveTypeRequest represents request to update a leave type
type UpdateLeaveTypeRequest struct {
	ID                 string   `json:"-"`
	Name               *string  `json:"name,omitempty"`
	Description        *string  `json:"description,omitempty"`
	Color              *string  `json:"color,omitempty"`
	YearlyQuota        *float64 `json:"yearly_quota,omitempty"`
	CarryForward       *bool    `json:"carry_forward,omitempty"`
	MaxCarryForward    *float64 `json:"max_carry_forward,omitempty"`
	MaxContinuousDays  *int     `json:"max_continuous_days,omitempty"`
	AllowHalfDay       *bool    `json:"allow_half_day,omitempty"`
	RequiresAttachment *bool    `json:"requires_attachment,omitempty"`
	IsActive           *bool    `json:"is_active,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.YearlyQuota != nil && *r.YearlyQuota < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "yearly_quota",
			Message: "yearly_quota must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LeaveTypeResponse represents leave type data in API responses
type LeaveTypeResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Code               string  `json:"code"`
	Description        *string `json:"description,omitempty"`
	Color              *string `json:"color,omitempty"`
	IsActive           bool    `json:"is_active"`
	AllowHalfDay       bool    `json:"allow_half_day"`
	RequiresAttachment bool    `json:"requires_attachment"`
	MaxContinuousDays  int     `json:"max_continuous_days"`
	YearlyQuota        float64 `json:"yearly_quota"`
	CarryForward       bool    `json:"carry_forward"`
	MaxCarryForward    float64 `json:"max_carry_forward"`
}

func (t *LeaveType) ToResponse() LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:                 t.ID,
		Name:               t.Name,
		Code:               t.Code,
		Description:        t.Description,
		Color:              t.Color,
		IsActive:           t.IsActive,
		AllowHalfDay:       t.AllowHalfDay,
		RequiresAttachment: t.RequiresAttachment,
		MaxContinuousDays:  t.MaxContinuousDays,
		YearlyQuota:        t.YearlyQuota,
		CarryForward:       t.CarryForward,
		MaxCarryForward:    t.MaxCarryForward,
	}
}

// SubmitLeaveRequest represents request to submit a new leave request
type SubmitLeaveRequest struct {
	UserID        string  `json:"-"`
	LeaveTypeID   string  `json:"leave_type_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	HalfDay       bool    `json:"half_day"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedDates returns the request range as times. Validate must pass first.
func (r *SubmitLeaveRequest) ParsedDates() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// ActionLeaveRequest represents a manager acting on a pending request
type ActionLeaveRequest struct {
	RequestID  string  `json:"-"`
	ApproverID string  `json:"-"`
	Remarks    *string `json:"remarks,omitempty"`
}

// LeaveRequestFilter narrows request listings. From and To select requests
// whose date range intersects the window; zero values disable the bound.
type LeaveRequestFilter struct {
	Status     string
	UserID     string
	Department string
	From       time.Time
	To         time.Time
}

// LeaveRequestResponse represents leave request data in API responses
type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	UserName      *string `json:"user_name,omitempty"`
	Department    *string `json:"department,omitempty"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	HalfDay       bool    `json:"half_day"`
	TotalDays     float64 `json:"total_days"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	Status        string  `json:"status"`
	ApproverID    *string `json:"approver_id,omitempty"`
	ActionAt      *string `json:"action_at,omitempty"`
	Remarks       *string `json:"remarks,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func (r *LeaveRequest) ToResponse() LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		UserName:      r.UserName,
		Department:    r.Department,
		LeaveTypeID:   r.LeaveTypeID,
		LeaveTypeName: r.LeaveTypeName,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		HalfDay:       r.HalfDay,
		TotalDays:     r.TotalDays,
		Reason:        r.Reason,
		AttachmentURL: r.AttachmentURL,
		Status:        string(r.Status),
		ApproverID:    r.ApproverID,
		Remarks:       r.Remarks,
		CreatedAt:     r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if r.ActionAt != nil {
		actionAt := r.ActionAt.Format("2006-01-02T15:04:05Z07:00")
		resp.ActionAt = &actionAt
	}
	return resp
}

// ActionLeaveResponse wraps the updated request plus an advisory warning,
// such as overlapping approved leave inside the same department. The warning
// never blocks the action.
type ActionLeaveResponse struct {
	Request         LeaveRequestResponse `json:"request"`
	ConflictWarning *string              `json:"conflict_warning,omitempty"`
}

// LeaveBalanceResponse represents one ledger row in API responses
type LeaveBalanceResponse struct {
	ID             string  `json:"id"`
	LeaveTypeID    string  `json:"leave_type_id"`
	LeaveTypeName  *string `json:"leave_type_name,omitempty"`
	Year           int     `json:"year"`
	TotalAllocated float64 `json:"total_allocated"`
	CarriedForward float64 `json:"carried_forward"`
	Used           float64 `json:"used"`
	Pending        float64 `json:"pending"`
	Balance        float64 `json:"balance"`
	Available      float64 `json:"available"`
}

func (b *LeaveBalance) ToResponse() LeaveBalanceResponse {
	return LeaveBalanceResponse{
		ID:             b.ID,
		LeaveTypeID:    b.LeaveTypeID,
		LeaveTypeName:  b.LeaveTypeName,
		Year:           b.Year,
		TotalAllocated: b.TotalAllocated,
		CarriedForward: b.CarriedForward,
		Used:           b.Used,
		Pending:        b.Pending,
		Balance:        b.Balance(),
		Available:      b.Available(),
	}
}

// CalendarEntry represents one approved leave on the team calendar
type CalendarEntry struct {
	RequestID     string  `json:"request_id"`
	UserID        string  `json:"user_id"`
	UserName      *string `json:"user_name,omitempty"`
	Department    *string `json:"department,omitempty"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	Color         *string `json:"color,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	HalfDay       bool    `json:"half_day"`
}
