package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/edison-energies/catalogue/internal/models"
	"github.com/edison-energies/catalogue/internal/repo"
)

type FileService struct {
	Repo *repo.GormRepo
	Dir  string
}

// storedName derives a unique on-disk name from the original filename. Only
// the extension survives, lowercased and stripped of anything unexpected.
func storedName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	clean := strings.Builder{}
	for _, r := range ext {
		if r == '.' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			clean.WriteRune(r)
		}
	}
	return uuid.NewString() + clean.String()
}

// Store writes the stream to the upload directory under a generated name and
// records its metadata. The on-disk file is removed again if the metadata
// insert fails.
func (s *FileService) Store(ctx context.Context, originalName, mimeType, uploadedBy string, src io.Reader) (*models.UploadedFile, error) {
	if originalName == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrValidation)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}

	name := storedName(originalName)
	path := filepath.Join(s.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("writing file: %w", err)
	}

	file := models.UploadedFile{
		Filename:         name,
		OriginalFilename: originalName,
		FilePath:         path,
		FileSize:         size,
		MimeType:         mimeType,
		UploadedBy:       uploadedBy,
	}
	if err := s.Repo.CreateFile(ctx, &file); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("recording file metadata: %w", err)
	}
	return &file, nil
}

func (s *FileService) Get(ctx context.Context, filename string) (*models.UploadedFile, error) {
	return s.Repo.GetFile(ctx, filename)
}

func (s *FileService) List(ctx context.Context) ([]models.UploadedFile, error) {
	return s.Repo.ListFiles(ctx)
}
