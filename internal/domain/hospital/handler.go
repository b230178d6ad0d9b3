package hospital

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
	api.GET("/hospital", h.Get)
	api.PUT("/hospital", h.Put)
	api.POST("/hospital/reset", h.Reset)
}

func (h *Handler) Get(c echo.Context) error {
	d, err := h.svc.Get(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Put(c echo.Context) error {
	var upd Update
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.svc.Update(c.Request().Context(), upd)
	if err != nil {
		return apperr.HTTP(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Reset(c echo.Context) error {
	d, err := h.svc.Reset(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}
