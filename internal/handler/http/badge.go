package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/badge"
	"github.com/staffsync/attendance-backend-go/internal/handler/http/response"
)

type BadgeHandler interface {
	ListDefinitions(w http.ResponseWriter, r *http.Request)
	GetMyBadges(w http.ResponseWriter, r *http.Request)
	EvaluateUser(w http.ResponseWriter, r *http.Request)
}

type BadgeHandlerImpl struct {
	badgeService badge.BadgeService
}

// ListDefinitions implements BadgeHandler.
func (b *BadgeHandlerImpl) ListDefinitions(w http.ResponseWriter, r *http.Request) {
	response.Success(w, b.badgeService.ListDefinitions(r.Context()))
}

// GetMyBadges implements BadgeHandler.
func (b *BadgeHandlerImpl) GetMyBadges(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	badges, err := b.badgeService.GetUserBadges(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, badges)
}

// EvaluateUser implements BadgeHandler.
func (b *BadgeHandlerImpl) EvaluateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	evaluation, err := b.badgeService.EvaluateUser(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, evaluation)
}

func NewBadgeHandler(badgeService badge.BadgeService) BadgeHandler {
	return &BadgeHandlerImpl{badgeService: badgeService}
}
