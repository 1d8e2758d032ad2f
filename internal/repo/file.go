package repo

import (
	"context"

	"github.com/edison-energies/catalogue/internal/models"
)

func (r *GormRepo) CreateFile(ctx context.Context, f *models.UploadedFile) error {
	return r.DB.WithContext(ctx).Create(f).Error
}

func (r *GormRepo) GetFile(ctx context.Context, filename string) (*models.UploadedFile, error) {
	var f models.UploadedFile
	if err := r.DB.WithContext(ctx).Where("filename = ?", filename).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *GormRepo) ListFiles(ctx context.Context) ([]models.UploadedFile, error) {
	var files []models.UploadedFile
	if err := r.DB.WithContext(ctx).Order("uploaded_at DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}
