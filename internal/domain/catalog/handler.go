package catalog

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medlab/medlab/internal/platform/apperr"
	"github.com/medlab/medlab/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/tests", h.List)
	api.POST("/tests", h.Create)
	api.GET("/tests/:id", h.Get)
	api.PUT("/tests/:id", h.Put)
	api.DELETE("/tests/:id", h.Delete)
}

type createRequest struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Category   string      `json:"category"`
	Parameters []Parameter `json:"parameters"`
	Price      float64     `json:"price"`
	CreatedAt  time.Time   `json:"createdAt"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t := &Test{
		ID:         req.ID,
		Name:       req.Name,
		Category:   req.Category,
		Parameters: req.Parameters,
		Price:      req.Price,
		CreatedAt:  req.CreatedAt,
	}
	if err := h.svc.Create(c.Request().Context(), t); err != nil {
		return apperr.HTTP(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) Get(c echo.Context) error {
	t, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperr.HTTP(err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	tests, err := h.svc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	start, end := pg.Slice(len(tests))
	return c.JSON(http.StatusOK, pagination.NewResponse(tests[start:end], len(tests), pg.Limit, pg.Offset))
}

func (h *Handler) Put(c echo.Context) error {
	var upd Update
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t, err := h.svc.Update(c.Request().Context(), c.Param("id"), upd)
	if err != nil {
		return apperr.HTTP(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) Delete(c echo.Context) error {
	deleted, err := h.svc.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "test not found")
	}
	return c.NoContent(http.StatusNoContent)
}
