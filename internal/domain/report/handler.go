package report

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
	api.GET("/reports", h.List)
	api.POST("/reports", h.Create)
	api.GET("/reports/:id", h.Get)
	api.PUT("/reports/:id", h.Put)
	api.DELETE("/reports/:id", h.Delete)
	api.POST("/reports/:id/results", h.Complete)
}

type createRequest struct {
	ID              string       `json:"id"`
	PatientID       string       `json:"patientId"`
	TestID          string       `json:"testId"`
	Results         []TestResult `json:"results"`
	Status          Status       `json:"status"`
	ReferringDoctor string       `json:"referringDoctor"`
	Notes           string       `json:"notes"`
	CreatedAt       time.Time    `json:"createdAt"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r := &Report{
		ID:              req.ID,
		PatientID:       req.PatientID,
		TestID:          req.TestID,
		Results:         req.Results,
		Status:          req.Status,
		ReferringDoctor: req.ReferringDoctor,
		Notes:           req.Notes,
		CreatedAt:       req.CreatedAt,
	}
	if err := h.svc.Create(c.Request().Context(), r); err != nil {
		return apperr.HTTP(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) Get(c echo.Context) error {
	r, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperr.HTTP(err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()
	pg := pagination.FromContext(c)

	var (
		reports []*Report
		err     error
	)
	switch {
	case c.QueryParam("patient_id") != "":
		reports, err = h.svc.ListByPatient(ctx, c.QueryParam("patient_id"))
	case c.QueryParam("status") == string(StatusPending):
		reports, err = h.svc.ListPending(ctx)
	default:
		reports, err = h.svc.List(ctx)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	start, end := pg.Slice(len(reports))
	return c.JSON(http.StatusOK, pagination.NewResponse(reports[start:end], len(reports), pg.Limit, pg.Offset))
}

func (h *Handler) Put(c echo.Context) error {
	var upd Update
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.Update(c.Request().Context(), c.Param("id"), upd)
	if err != nil {
		return apperr.HTTP(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) Delete(c echo.Context) error {
	deleted, err := h.svc.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "report not found")
	}
	return c.NoContent(http.StatusNoContent)
}

type completeRequest struct {
	Values map[string]string `json:"values"`
	Notes  *string           `json:"notes"`
}

func (h *Handler) Complete(c echo.Context) error {
	var req completeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.CompleteResults(c.Request().Context(), c.Param("id"), req.Values, req.Notes)
	if err != nil {
		return apperr.HTTP(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, r)
}
