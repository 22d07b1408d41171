package user

import (
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	EmployeeCode   string   `json:"employee_code"`
	Department     string   `json:"department"`
	Position       *string  `json:"position,omitempty"`
	ProfilePicture *string  `json:"profile_picture,omitempty"`
	Theme          string   `json:"theme"`
	Badges         []string `json:"badges"`
	CurrentStreak  int      `json:"current_streak"`
	LongestStreak  int      `json:"longest_streak"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

// ToResponse converts a User entity into its API representation
func (u *User) ToResponse() UserResponse {
	badges := u.Badges
	if badges == nil {
		badges = []string{}
	}
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           string(u.Role),
		EmployeeCode:   u.EmployeeCode,
		Department:     u.Department,
		Position:       u.Position,
		ProfilePicture: u.ProfilePicture,
		Theme:          string(u.Theme),
		Badges:         badges,
		CurrentStreak:  u.CurrentStreak,
		LongestStreak:  u.LongestStreak,
		CreatedAt:      u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      u.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// UpdateProfileRequest represents request to update the caller's profile
type UpdateProfileRequest struct {
	UserID     string  `json:"-"`
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Department != nil && validator.IsEmpty(*r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateThemeRequest represents request to switch the UI theme
type UpdateThemeRequest struct {
	UserID string `json:"-"`
	Theme  string `json:"theme"`
}

func (r *UpdateThemeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Theme) {
		errs = append(errs, validator.ValidationError{
			Field:   "theme",
			Message: "theme is required",
		})
	} else if !validator.IsInSlice(r.Theme, []string{string(ThemeLight), string(ThemeDark)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "theme",
			Message: "theme must be light or dark",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
