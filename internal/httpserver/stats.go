package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edison-energies/catalogue/internal/logging"
)

func (h *CatalogueHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stats")

	stats, err := h.Svc.Stats(ctx)
	if err != nil {
		l.Error("stats_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot compute stats")
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *CatalogueHTTP) Health(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.Svc.Stats(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unreachable")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":         "OK",
		"products_count": stats.TotalProducts,
		"users_count":    stats.TotalUsers,
	})
}
