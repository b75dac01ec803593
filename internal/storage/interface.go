package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned (wrapped) when a requested file is absent
var ErrNotExist = errors.New("file does not exist")

// StorageClient defines basic file operations shared by the local-disk and
// GCS backends. Paths are slash-separated and relative to the backend root.
type StorageClient interface {
	// Close releases backend resources
	Close() error

	// CreateDir creates a directory and any missing parents. GCS has no
	// directories so the call is a no-op there.
	CreateDir(ctx context.Context, dirPath string) error

	// StoreFile writes fileData at filePath, replacing any existing file
	StoreFile(ctx context.Context, filePath string, fileData []byte) error

	// GetFile reads the file at filePath
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListDir lists file paths under dirPath, sorted
	ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error)

	// FileExists reports whether a file exists at filePath
	FileExists(ctx context.Context, filePath string) (bool, error)
}
