package user

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/service/file"
)

// maxProfilePictureSize caps uploads at 2 MiB
const maxProfilePictureSize = 2 << 20

type Service struct {
	user.UserRepository
	FileService file.FileService
}

func NewService(userRepository user.UserRepository, fileService file.FileService) *Service {
	return &Service{
		UserRepository: userRepository,
		FileService:    fileService,
	}
}

// GetProfile implements user.UserService.
func (s *Service) GetProfile(ctx context.Context, userID string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	return u.ToResponse(), nil
}

// UpdateProfile implements user.UserService.
func (s *Service) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if err := s.UserRepository.UpdateProfile(ctx, req); err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.GetProfile(ctx, req.UserID)
}

// UpdateTheme implements user.UserService.
func (s *Service) UpdateTheme(ctx context.Context, req user.UpdateThemeRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if err := s.UserRepository.UpdateTheme(ctx, req.UserID, user.Theme(req.Theme)); err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update theme: %w", err)
	}

	return s.GetProfile(ctx, req.UserID)
}

// UploadProfilePicture implements user.UserService.
func (s *Service) UploadProfilePicture(ctx context.Context, userID string, f multipart.File, header *multipart.FileHeader) (user.UserResponse, error) {
	if header.Size > maxProfilePictureSize {
		return user.UserResponse{}, fmt.Errorf("profile picture exceeds the 2MB limit")
	}

	path, err := s.FileService.UploadProfilePicture(ctx, userID, f, header.Filename)
	if err != nil {
		return user.UserResponse{}, err
	}

	if err := s.UserRepository.UpdateProfilePicture(ctx, userID, path); err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to save profile picture: %w", err)
	}

	return s.GetProfile(ctx, userID)
}
