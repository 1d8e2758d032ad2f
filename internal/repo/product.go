package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/edison-energies/catalogue/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, reference string) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("reference = ?", reference).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, family, search string) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if family != "" {
		q = q.Where("family = ?", family)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(reference) LIKE ? OR lower(designation) LIKE ?", like, like)
	}

	var items []models.Product
	if err := q.Order("reference ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

// OverwriteProduct replaces the mutable fields of an existing product, the
// update half of a batch upsert. UpdatedAt is refreshed by gorm.
func (r *GormRepo) OverwriteProduct(ctx context.Context, reference string, prod *models.Product) (*models.Product, error) {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("reference = ?", reference).Updates(map[string]any{
		"designation": prod.Designation,
		"price":       prod.Price,
		"unit":        prod.Unit,
		"family":      prod.Family,
		"icon":        prod.Icon,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetProduct(ctx, reference)
}

func (r *GormRepo) UpdateProduct(ctx context.Context, reference string, updates map[string]any) (*models.Product, error) {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("reference = ?", reference).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetProduct(ctx, reference)
}

func (r *GormRepo) DeleteProduct(ctx context.Context, reference string) error {
	res := r.DB.WithContext(ctx).Where("reference = ?", reference).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
