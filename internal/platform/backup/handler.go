package backup

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medlab/medlab/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/backup/export", h.Export)
	api.POST("/backup/import", h.Import)
}

func (h *Handler) Export(c echo.Context) error {
	doc, err := h.svc.Export(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="medlab_data.json"`)
	return c.JSON(http.StatusOK, doc)
}

func (h *Handler) Import(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	doc, err := h.svc.Import(c.Request().Context(), raw)
	if err != nil {
		return apperr.HTTP(err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "import complete",
		"patients": len(doc.Patients),
		"tests":    len(doc.Tests),
		"reports":  len(doc.Reports),
		"invoices": len(doc.Invoices),
	})
}
