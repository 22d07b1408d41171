package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/handler/http/response"
)

type ProfileHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateTheme(w http.ResponseWriter, r *http.Request)
	UploadPicture(w http.ResponseWriter, r *http.Request)
}

type ProfileHandlerImpl struct {
	userService user.UserService
}

// Get implements ProfileHandler.
func (p *ProfileHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	profile, err := p.userService.GetProfile(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// Update implements ProfileHandler.
func (p *ProfileHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req user.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	profile, err := p.userService.UpdateProfile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated", profile)
}

// UpdateTheme implements ProfileHandler.
func (p *ProfileHandlerImpl) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req user.UpdateThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	profile, err := p.userService.UpdateTheme(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Theme updated", profile)
}

// UploadPicture implements ProfileHandler.
func (p *ProfileHandlerImpl) UploadPicture(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, fileHeader, err := r.FormFile("picture")
	if err != nil {
		response.BadRequest(w, "picture file is required", nil)
		return
	}
	defer file.Close()

	profile, err := p.userService.UploadProfilePicture(r.Context(), userID, file, fileHeader)
	if err != nil {
		slog.Error("UploadPicture service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile picture updated", profile)
}

func NewProfileHandler(userService user.UserService) ProfileHandler {
	return &ProfileHandlerImpl{userService: userService}
}
