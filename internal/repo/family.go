package repo

import (
	"context"

	"github.com/edison-energies/catalogue/internal/models"
)

func (r *GormRepo) ListFamilies(ctx context.Context) ([]models.Family, error) {
	var items []models.Family
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateFamily(ctx context.Context, fam *models.Family) error {
	return r.DB.WithContext(ctx).Create(fam).Error
}
