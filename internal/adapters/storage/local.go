package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"eventbooking/internal/domain"
)

type localImageStore struct {
	baseDir string
}

// NewLocalImageStore returns an ImageStore that writes event images under
// baseDir/events with generated names. The returned paths follow the
// "uploads/events/<name>.<ext>" convention regardless of where baseDir lives.
func NewLocalImageStore(baseDir string) domain.ImageStore {
	return &localImageStore{baseDir: baseDir}
}

func (s *localImageStore) Save(ctx context.Context, upload domain.ImageUpload) (string, error) {
	if !domain.AllowedImageExt(upload.Filename) {
		return "", fmt.Errorf("%w: unsupported image type %q", domain.ErrInvalidInput, filepath.Ext(upload.Filename))
	}
	ext := strings.ToLower(filepath.Ext(upload.Filename))

	dir := filepath.Join(s.baseDir, "events")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, upload.Content); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return "uploads/events/" + name, nil
}
