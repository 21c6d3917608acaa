// Package storage stores uploaded images, user avatars and project covers,
// behind a backend-agnostic interface with local-disk and S3 implementations.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrFileNotFound is returned when a requested file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidPath is returned when a path is invalid or contains path traversal.
	ErrInvalidPath = errors.New("invalid path")

	// ErrUnsupportedImage is returned when an uploaded file is not an
	// accepted image type.
	ErrUnsupportedImage = errors.New("unsupported image type: must be jpg, jpeg, png, gif or webp")
)

// BlobStorage defines the interface for storing and retrieving binary data.
type BlobStorage interface {
	// Upload stores data from the reader at the specified path.
	Upload(ctx context.Context, path string, reader io.Reader) error

	// Download retrieves data from the specified path.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the data at the specified path.
	Delete(ctx context.Context, path string) error

	// Exists checks if data exists at the specified path.
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns a URL for accessing the data at the specified path.
	// For local storage this is a filesystem path; for S3 a presigned URL.
	GetURL(ctx context.Context, path string) (string, error)
}

// Config selects and parameterizes the storage backend.
type Config struct {
	// Type is "local" or "s3".
	Type string

	// BaseDir is the root directory for local storage.
	BaseDir string

	// Bucket and Region configure the S3 backend.
	Bucket string
	Region string

	// PresignExpiry bounds the lifetime of generated S3 URLs.
	PresignExpiry time.Duration
}

// New creates a BlobStorage implementation from the configuration.
func New(cfg Config) (BlobStorage, error) {
	switch strings.ToLower(cfg.Type) {
	case "local":
		if cfg.BaseDir == "" {
			return nil, fmt.Errorf("base_dir is required for local storage")
		}
		return NewLocalStorage(cfg.BaseDir)

	case "s3":
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("bucket is required for s3 storage")
		}
		if cfg.Region == "" {
			return nil, fmt.Errorf("region is required for s3 storage")
		}

		s3Storage, err := NewS3Storage(cfg.Bucket, cfg.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		if cfg.PresignExpiry > 0 {
			s3Storage.presignExpiration = cfg.PresignExpiry
		}
		return s3Storage, nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// ValidateImageName checks that an uploaded filename carries an accepted
// image extension.
func ValidateImageName(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageExtensions[ext]; !ok {
		return ErrUnsupportedImage
	}
	return nil
}
