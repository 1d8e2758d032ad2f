package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edison-energies/catalogue/internal/logging"
	"github.com/edison-energies/catalogue/internal/service"
)

type FileHTTP struct {
	Svc *service.FileService
}

// Upload accepts a multipart form with a "file" part and an optional
// "uploaded_by" field, and answers with the generated stored filename.
func (h *FileHTTP) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "file.upload")

	fh, err := c.FormFile("file")
	if err != nil {
		l.Warn("upload_error", "status", 400, "reason", "missing file part", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "missing file part")
	}

	src, err := fh.Open()
	if err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read uploaded file")
	}
	defer src.Close()

	file, err := h.Svc.Store(ctx, fh.Filename, fh.Header.Get("Content-Type"), c.FormValue("uploaded_by"), src)
	if err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store uploaded file")
	}

	l.Info("upload_success", "filename", file.Filename, "size", file.FileSize)
	return c.JSON(http.StatusCreated, map[string]any{
		"filename":          file.Filename,
		"original_filename": file.OriginalFilename,
		"file_size":         file.FileSize,
		"mime_type":         file.MimeType,
	})
}

func (h *FileHTTP) ListFiles(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "file.list")

	files, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("list_files_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list files")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"count": len(files),
		"files": files,
	})
}
