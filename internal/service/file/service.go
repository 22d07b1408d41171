package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/staffsync/attendance-backend-go/internal/pkg/storage"
)

type FileService interface {
	// Profile picture uploads
	UploadProfilePicture(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// Leave attachment uploads
	UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

func validateExt(filename string, allowed ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return ext, nil
		}
	}
	return "", fmt.Errorf("invalid file type %q: only %s allowed", ext, strings.Join(allowed, ", "))
}

// UploadProfilePicture uploads a user's profile picture
func (s *fileServiceImpl) UploadProfilePicture(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext, err := validateExt(filename, ".jpg", ".jpeg", ".png")
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s-%s%s", userID, uuid.New().String(), ext)
	path := filepath.Join("profile-pictures", userID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path)
	if err != nil {
		return "", fmt.Errorf("failed to upload profile picture: %w", err)
	}

	return uploadedPath, nil
}

// UploadLeaveAttachment uploads a supporting document for a leave request
func (s *fileServiceImpl) UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext, err := validateExt(filename, ".jpg", ".jpeg", ".png", ".pdf")
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	path := filepath.Join("leave-attachments", userID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path)
	if err != nil {
		return "", fmt.Errorf("failed to upload leave attachment: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile removes a stored file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL resolves the public URL for a stored file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string) (string, error) {
	return s.storage.GetURL(ctx, path)
}
