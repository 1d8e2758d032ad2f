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

type DAHTTP struct {
	Svc *service.DAService
}

func (h *DAHTTP) CreateDA(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "da.create")

	var req transport.CreateDARequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_da_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	da, notification, err := h.Svc.SubmitDA(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_da_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_da_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create purchase request")
	}

	l.Info("create_da_success", "da_number", da.DANumber, "notification", notification)
	return c.JSON(http.StatusCreated, map[string]any{
		"da_number":    da.DANumber,
		"request":      da,
		"notification": notification,
	})
}

func (h *DAHTTP) GetDA(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "da.get")

	number := c.Param("number")
	da, err := h.Svc.GetRequest(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_da_failed", "status", 404, "da_number", number)
			return echo.NewHTTPError(http.StatusNotFound, "purchase request not found")
		}
		l.Error("get_da_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get purchase request")
	}

	return c.JSON(http.StatusOK, da)
}

func (h *DAHTTP) ListDAs(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "da.list")

	items, err := h.Svc.ListRequests(ctx, c.QueryParam("status"))
	if err != nil {
		l.Error("list_da_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list purchase requests")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"count":    len(items),
		"requests": items,
	})
}

func (h *DAHTTP) UpdateDAStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "da.update_status")

	number := c.Param("number")

	var req transport.UpdateDAStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_da_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	da, err := h.Svc.UpdateStatus(ctx, number, req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("update_da_status_error", "status", 404, "da_number", number)
			return echo.NewHTTPError(http.StatusNotFound, "purchase request not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_da_status_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("update_da_status_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update purchase request")
	}

	l.Info("update_da_status_success", "da_number", number, "new_status", da.Status)
	return c.JSON(http.StatusOK, da)
}

func (h *DAHTTP) DeleteDA(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "da.delete")

	number := c.Param("number")
	if err := h.Svc.DeleteRequest(ctx, number); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_da_error", "status", 404, "da_number", number)
			return echo.NewHTTPError(http.StatusNotFound, "purchase request not found")
		}
		l.Error("delete_da_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete purchase request")
	}

	l.Info("delete_da_success", "da_number", number)
	return c.NoContent(http.StatusNoContent)
}
