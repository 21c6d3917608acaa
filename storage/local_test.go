package storage

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLocalStorage(t *testing.T) {
	tests := []struct {
		name      string
		baseDir   string
		wantError bool
	}{
		{
			name:      "valid base directory",
			baseDir:   t.TempDir(),
			wantError: false,
		},
		{
			name:      "creates non-existent directory",
			baseDir:   filepath.Join(t.TempDir(), "new-dir"),
			wantError: false,
		},
		{
			name:      "empty base directory",
			baseDir:   "",
			wantError: true,
		},
		{
			name:      "dot as base directory",
			baseDir:   ".",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, err := NewLocalStorage(tt.baseDir)
			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if storage == nil {
				t.Fatal("expected storage but got nil")
			}
		})
	}
}

func TestLocalStorage_UploadAndDownload(t *testing.T) {
	ctx := context.Background()
	storage, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	tests := []struct {
		name      string
		path      string
		content   string
		wantError bool
	}{
		{
			name:      "upload avatar",
			path:      "avatars/user-1.png",
			content:   "fake png bytes",
			wantError: false,
		},
		{
			name:      "upload project cover in nested path",
			path:      "projects/p-1/cover.jpg",
			content:   "fake jpg bytes",
			wantError: false,
		},
		{
			name:      "empty path",
			path:      "",
			content:   "content",
			wantError: true,
		},
		{
			name:      "path traversal attempt",
			path:      "../outside.png",
			content:   "content",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := storage.Upload(ctx, tt.path, strings.NewReader(tt.content))
			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			rc, err := storage.Download(ctx, tt.path)
			if err != nil {
				t.Fatalf("Download() error = %v", err)
			}
			defer rc.Close()

			var buf bytes.Buffer
			if _, err := io.Copy(&buf, rc); err != nil {
				t.Fatalf("failed to read downloaded file: %v", err)
			}
			if buf.String() != tt.content {
				t.Errorf("downloaded content = %q, want %q", buf.String(), tt.content)
			}
		})
	}
}

func TestLocalStorage_DownloadNotFound(t *testing.T) {
	ctx := context.Background()
	storage, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	_, err = storage.Download(ctx, "missing.png")
	if err != ErrFileNotFound {
		t.Errorf("Download() error = %v, want %v", err, ErrFileNotFound)
	}
}

func TestLocalStorage_Delete(t *testing.T) {
	ctx := context.Background()
	storage, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	path := "avatars/user-2.png"
	if err := storage.Upload(ctx, path, strings.NewReader("bytes")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if err := storage.Delete(ctx, path); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	exists, err := storage.Exists(ctx, path)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("file should not exist after delete")
	}

	if err := storage.Delete(ctx, path); err != ErrFileNotFound {
		t.Errorf("Delete() on missing file error = %v, want %v", err, ErrFileNotFound)
	}
}

func TestLocalStorage_GetURL(t *testing.T) {
	ctx := context.Background()
	baseDir := t.TempDir()
	storage, err := NewLocalStorage(baseDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	path := "projects/p-2/cover.webp"
	if err := storage.Upload(ctx, path, strings.NewReader("bytes")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	url, err := storage.GetURL(ctx, path)
	if err != nil {
		t.Fatalf("GetURL() error = %v", err)
	}
	if !strings.HasPrefix(url, baseDir) {
		t.Errorf("GetURL() = %q, want prefix %q", url, baseDir)
	}

	if _, err := storage.GetURL(ctx, "missing.png"); err != ErrFileNotFound {
		t.Errorf("GetURL() on missing file error = %v, want %v", err, ErrFileNotFound)
	}
}
