package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountAll(ctx context.Context) (int, error)
	// NextEmployeeCode reserves the next sequential code. Must run inside a
	// transaction; concurrent callers are serialized until it commits.
	NextEmployeeCode(ctx context.Context) (string, error)
	ListByDepartment(ctx context.Context, department string) ([]User, error)
	ListManagers(ctx context.Context) ([]User, error)
	ListAll(ctx context.Context) ([]User, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error
	UpdateTheme(ctx context.Context, userID string, theme Theme) error
	UpdateProfilePicture(ctx context.Context, userID, path string) error
	UpdateStreaks(ctx context.Context, userID string, current, longest int) error
	AddBadge(ctx context.Context, userID, badge string) error
}
