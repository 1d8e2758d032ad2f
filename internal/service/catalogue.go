package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/edison-energies/catalogue/internal/logging"
	"github.com/edison-energies/catalogue/internal/models"
	"github.com/edison-energies/catalogue/internal/repo"
	"github.com/edison-energies/catalogue/internal/transport"
)

// Publisher pushes a domain event to the event stream. Publishing is always
// best-effort: callers log failures and move on.
type Publisher interface {
	Publish(ctx context.Context, key string, event map[string]any) error
}

type CatalogueService struct {
	Repo   *repo.GormRepo
	Events Publisher // optional
}

func (s *CatalogueService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, key, event); err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "key", key, "error", err)
	}
}

func productFromRequest(req transport.CreateProductRequest) models.Product {
	prod := models.Product{
		Reference:   strings.TrimSpace(req.Reference),
		Designation: req.Designation,
		Price:       req.Price,
		Unit:        req.Unit,
		Family:      req.Family,
		Icon:        req.Icon,
	}
	if prod.Unit == "" {
		prod.Unit = models.DefaultUnit
	}
	if prod.Family == "" {
		prod.Family = models.DefaultFamily
	}
	if prod.Icon == "" {
		prod.Icon = models.DefaultIcon
	}
	return prod
}

func validateProductRequest(req transport.CreateProductRequest) error {
	if strings.TrimSpace(req.Reference) == "" {
		return fmt.Errorf("%w: reference is required", ErrValidation)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	return nil
}

func (s *CatalogueService) GetProduct(ctx context.Context, reference string) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, reference)
}

func (s *CatalogueService) ListProducts(ctx context.Context, family, search string) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx, family, search)
}

func (s *CatalogueService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	prod := productFromRequest(req)
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: reference %q already exists", ErrDuplicate, prod.Reference)
		}
		return nil, err
	}

	s.publish(ctx, prod.Reference, map[string]any{
		"type":      "product_created",
		"reference": prod.Reference,
		"family":    prod.Family,
	})
	return &prod, nil
}

func (s *CatalogueService) UpdateProduct(ctx context.Context, reference string, req transport.UpdateProductRequest) (*models.Product, error) {
	updates := map[string]any{}
	if req.Designation != nil {
		updates["designation"] = *req.Designation
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		updates["price"] = *req.Price
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.Family != nil {
		updates["family"] = *req.Family
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}

	if len(updates) == 0 {
		return s.Repo.GetProduct(ctx, reference)
	}

	prod, err := s.Repo.UpdateProduct(ctx, reference, updates)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, reference, map[string]any{
		"type":      "product_updated",
		"reference": reference,
	})
	return prod, nil
}

func (s *CatalogueService) DeleteProduct(ctx context.Context, reference string) error {
	if err := s.Repo.DeleteProduct(ctx, reference); err != nil {
		return err
	}

	s.publish(ctx, reference, map[string]any{
		"type":      "product_deleted",
		"reference": reference,
	})
	return nil
}

// SyncProducts applies a batch of product records in input order. Each item
// is attempted independently: a fresh reference is inserted, a known one is
// overwritten, and a failure is recorded without aborting the rest. Writes
// for successful items stay durable even when later items fail.
func (s *CatalogueService) SyncProducts(ctx context.Context, items []transport.CreateProductRequest) *transport.BatchResult {
	l := logging.FromContext(ctx).With("svc", "catalogue.sync_products")

	result := &transport.BatchResult{
		Total:  len(items),
		Errors: []transport.BatchItemError{},
	}

	for _, item := range items {
		created, err := s.syncOne(ctx, item)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, transport.BatchItemError{
				Reference: item.Reference,
				Error:     err.Error(),
			})
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	l.Info("sync_products_done",
		"created", result.Created,
		"updated", result.Updated,
		"failed", result.Failed,
		"total", result.Total,
	)

	s.publish(ctx, "batch", map[string]any{
		"type":    "products_synced",
		"created": result.Created,
		"updated": result.Updated,
		"failed":  result.Failed,
		"total":   result.Total,
	})
	return result
}

func (s *CatalogueService) syncOne(ctx context.Context, item transport.CreateProductRequest) (created bool, err error) {
	if err := validateProductRequest(item); err != nil {
		return false, err
	}

	prod := productFromRequest(item)
	err = s.Repo.CreateProduct(ctx, &prod)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, err
	}

	// Insert lost to an existing reference: overwrite it.
	if _, err := s.Repo.OverwriteProduct(ctx, prod.Reference, &prod); err != nil {
		return false, err
	}
	return false, nil
}

func (s *CatalogueService) ListFamilies(ctx context.Context) ([]models.Family, error) {
	return s.Repo.ListFamilies(ctx)
}

func (s *CatalogueService) CreateFamily(ctx context.Context, req transport.CreateFamilyRequest) (*models.Family, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	fam := models.Family{Name: strings.TrimSpace(req.Name), Icon: req.Icon}
	if fam.Icon == "" {
		fam.Icon = models.DefaultIcon
	}
	if err := s.Repo.CreateFamily(ctx, &fam); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: family %q already exists", ErrDuplicate, fam.Name)
		}
		return nil, err
	}
	return &fam, nil
}
