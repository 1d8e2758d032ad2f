package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/edison-energies/catalogue/internal/models"
)

// CreateRequest persists a purchase request and all its articles as one unit.
// Any failure rolls back the whole request, including a da_number collision
// on the header insert, which surfaces as gorm.ErrDuplicatedKey.
func (r *GormRepo) CreateRequest(ctx context.Context, req *models.PurchaseRequest) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		articles := req.Articles
		req.Articles = nil
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		for i := range articles {
			articles[i].DANumber = req.DANumber
		}
		if len(articles) > 0 {
			if err := tx.Create(&articles).Error; err != nil {
				return err
			}
		}
		req.Articles = articles
		return nil
	})
}

func (r *GormRepo) GetRequest(ctx context.Context, daNumber string) (*models.PurchaseRequest, error) {
	var req models.PurchaseRequest
	if err := r.DB.WithContext(ctx).Preload("Articles").
		Where("da_number = ?", daNumber).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *GormRepo) ListRequests(ctx context.Context, status string) ([]models.PurchaseRequest, error) {
	q := r.DB.WithContext(ctx).Model(&models.PurchaseRequest{}).Preload("Articles")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var reqs []models.PurchaseRequest
	if err := q.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *GormRepo) UpdateRequestStatus(ctx context.Context, daNumber, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.PurchaseRequest{}).
		Where("da_number = ?", daNumber).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteRequest removes the header and cascades to its articles in the same
// transaction. Articles are not addressable outside their request.
func (r *GormRepo) DeleteRequest(ctx context.Context, daNumber string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("da_number = ?", daNumber).Delete(&models.PurchaseRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("da_number = ?", daNumber).Delete(&models.DAArticle{}).Error
	})
}
