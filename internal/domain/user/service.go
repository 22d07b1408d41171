package user

import (
	"context"
	"mime/multipart"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (UserResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (UserResponse, error)
	UpdateTheme(ctx context.Context, req UpdateThemeRequest) (UserResponse, error)
	UploadProfilePicture(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (UserResponse, error)
}
