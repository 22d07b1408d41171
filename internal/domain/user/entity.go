package user

import "time"

type Role string

const (
	RoleManager  Role = "manager"  // Can act on leave requests for their department
	RoleEmployee Role = "employee" // Regular employee
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type User struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Role           Role
	EmployeeCode   string
	Department     string
	Position       *string
	ProfilePicture *string
	Theme          Theme
	Badges         []string
	CurrentStreak  int
	LongestStreak  int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsManager checks if user can approve requests
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// HasBadge checks if the badge has already been awarded
func (u *User) HasBadge(badge string) bool {
	for _, b := range u.Badges {
		if b == badge {
			return true
		}
	}
	return false
}
