package docgen

import (
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
	api.GET("/reports/:id/document", h.Report)
	api.GET("/invoices/:id/document", h.Invoice)
}

func (h *Handler) Report(c echo.Context) error {
	doc, err := h.svc.ReportDocument(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperr.HTTP(err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *Handler) Invoice(c echo.Context) error {
	doc, err := h.svc.InvoiceDocument(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperr.HTTP(err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, doc)
}
