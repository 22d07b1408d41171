package storage

import (
	"context"
	"io"
)

type FileStorage interface {
	// Upload stores a file and returns the path/key it was stored under
	Upload(ctx context.Context, file io.Reader, path string) (string, error)

	// Download retrieves a stored file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// GetURL returns a public URL for a stored file
	GetURL(ctx context.Context, path string) (string, error)

	// Exists checks if a file exists
	Exists(ctx context.Context, path string) (bool, error)
}
