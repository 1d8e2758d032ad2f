package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/edison-energies/catalogue/internal/logging"
	"github.com/edison-energies/catalogue/internal/service"
	"github.com/edison-energies/catalogue/internal/transport"
)

type CatalogueHTTP struct {
	Svc *service.CatalogueService
}

func (h *CatalogueHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	items, err := h.Svc.ListProducts(ctx, c.QueryParam("family"), c.QueryParam("search"))
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"count":    len(items),
		"products": items,
	})
}

func (h *CatalogueHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	reference := c.Param("reference")
	product, err := h.Svc.GetProduct(ctx, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_failed", "status", 404, "reference", reference)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogueHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrDuplicate) {
			l.Warn("create_product_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	l.Info("create_product_success", "reference", product.Reference)
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogueHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	reference := c.Param("reference")

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.UpdateProduct(ctx, reference, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("update_product_error", "status", 404, "reference", reference)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_product_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("update_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	l.Info("update_product_success", "reference", reference)
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogueHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	reference := c.Param("reference")
	if err := h.Svc.DeleteProduct(ctx, reference); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_product_error", "status", 404, "reference", reference)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("delete_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	l.Info("delete_product_success", "reference", reference)
	return c.NoContent(http.StatusNoContent)
}

// SyncProducts handles the bulk upsert. It always answers 200 with the
// per-item report: item failures belong in the payload, not the status code.
func (h *CatalogueHTTP) SyncProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.batch")

	var items []transport.CreateProductRequest
	if err := c.Bind(&items); err != nil {
		l.Warn("sync_products_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	result := h.Svc.SyncProducts(ctx, items)
	return c.JSON(http.StatusOK, result)
}

func (h *CatalogueHTTP) GetFamilies(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "family.list")

	items, err := h.Svc.ListFamilies(ctx)
	if err != nil {
		l.Error("list_families_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list families")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"count":    len(items),
		"families": items,
	})
}

func (h *CatalogueHTTP) CreateFamily(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "family.create")

	var req transport.CreateFamilyRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_family_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	fam, err := h.Svc.CreateFamily(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrDuplicate) {
			l.Warn("create_family_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_family_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create family")
	}

	return c.JSON(http.StatusCreated, fam)
}
