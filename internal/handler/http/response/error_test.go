package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/auth"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"user not found", user.ErrUserNotFound, http.StatusNotFound},
		{"manager access required", user.ErrManagerAccessRequired, http.StatusForbidden},
		{"overlapping leave", leave.ErrOverlappingLeave, http.StatusConflict},
		{"insufficient balance", leave.ErrInsufficientBalance, http.StatusBadRequest},
		{"invalid transition", leave.ErrInvalidTransition, http.StatusConflict},
		{"remarks required", leave.ErrRemarksRequired, http.StatusBadRequest},
		{"half day spans days", leave.ErrHalfDaySpansMultipleDays, http.StatusBadRequest},
		{"already checked in", attendance.ErrAlreadyCheckedIn, http.StatusConflict},
		{"not checked in", attendance.ErrNotCheckedIn, http.StatusConflict},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
		})
	}
}

func TestHandleErrorValidationErrors(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "password", Message: "password must be at least 8 characters"},
	}

	rec := httptest.NewRecorder()
	HandleError(rec, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "email is required", body.Error.Details["email"])
	assert.Equal(t, "password must be at least 8 characters", body.Error.Details["password"])
}
