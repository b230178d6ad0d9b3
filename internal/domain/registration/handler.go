package registration

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
	api.POST("/registrations", h.Register)
}

func (h *Handler) Register(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.svc.Register(c.Request().Context(), req)
	if err != nil {
		return apperr.HTTP(err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusCreated, res)
}
