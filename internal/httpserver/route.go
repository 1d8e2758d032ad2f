package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Catalogue *CatalogueHTTP
	DA        *DAHTTP
	Auth      *AuthHTTP
	Files     *FileHTTP
	Search    *SearchHTTP // nil when Elasticsearch is not configured
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health", d.Catalogue.Health)
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.GET("/products", d.Catalogue.GetProducts)
	api.POST("/products", d.Catalogue.CreateProduct)
	api.POST("/products/batch", d.Catalogue.SyncProducts)
	if d.Search != nil {
		api.GET("/products/search", d.Search.Handler)
	}
	api.GET("/products/:reference", d.Catalogue.GetProduct)
	api.PUT("/products/:reference", d.Catalogue.UpdateProduct)
	api.DELETE("/products/:reference", d.Catalogue.DeleteProduct)

	api.GET("/families", d.Catalogue.GetFamilies)
	api.POST("/families", d.Catalogue.CreateFamily)

	api.POST("/login", d.Auth.Login)
	api.POST("/users", d.Auth.Register)
	api.GET("/users", d.Auth.GetUsers)

	api.GET("/stats", d.Catalogue.Stats)

	api.POST("/da", d.DA.CreateDA)
	api.GET("/da", d.DA.ListDAs)
	api.GET("/da/:number", d.DA.GetDA)
	api.PUT("/da/:number/status", d.DA.UpdateDAStatus)
	api.DELETE("/da/:number", d.DA.DeleteDA)

	api.POST("/upload", d.Files.Upload)
	api.GET("/files", d.Files.ListFiles)
}
