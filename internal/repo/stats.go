package repo

import (
	"context"

	"github.com/edison-energies/catalogue/internal/models"
)

type FamilyCount struct {
	Family string `json:"family"`
	Count  int64  `json:"count"`
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) CountRequests(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.PurchaseRequest{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) CountProductsByFamily(ctx context.Context) ([]FamilyCount, error) {
	var counts []FamilyCount
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Select("family, count(*) as count").
		Group("family").Order("family ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
