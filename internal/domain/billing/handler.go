package billing

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
	api.GET("/invoices", h.List)
	api.POST("/invoices", h.Create)
	api.GET("/invoices/:id", h.Get)
	api.PUT("/invoices/:id", h.Put)
	api.DELETE("/invoices/:id", h.Delete)
	api.POST("/invoices/:id/payment", h.Pay)
}

type createRequest struct {
	ID            string        `json:"id"`
	PatientID     string        `json:"patientId"`
	Tests         []string      `json:"tests"`
	TotalAmount   float64       `json:"totalAmount"`
	Status        Status        `json:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	inv := &Invoice{
		ID:            req.ID,
		PatientID:     req.PatientID,
		Tests:         req.Tests,
		TotalAmount:   req.TotalAmount,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     req.CreatedAt,
	}
	if err := h.svc.Create(c.Request().Context(), inv); err != nil {
		return apperr.HTTP(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusCreated, inv)
}

func (h *Handler) Get(c echo.Context) error {
	inv, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperr.HTTP(err, http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()
	pg := pagination.FromContext(c)

	var (
		invoices []*Invoice
		err      error
	)
	switch {
	case c.QueryParam("patient_id") != "":
		invoices, err = h.svc.ListByPatient(ctx, c.QueryParam("patient_id"))
	case c.QueryParam("unpaid") == "true":
		invoices, err = h.svc.ListUnpaid(ctx)
	default:
		invoices, err = h.svc.List(ctx)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	start, end := pg.Slice(len(invoices))
	return c.JSON(http.StatusOK, pagination.NewResponse(invoices[start:end], len(invoices), pg.Limit, pg.Offset))
}

func (h *Handler) Put(c echo.Context) error {
	var upd Update
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	inv, err := h.svc.Update(c.Request().Context(), c.Param("id"), upd)
	if err != nil {
		return apperr.HTTP(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) Delete(c echo.Context) error {
	deleted, err := h.svc.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "invoice not found")
	}
	return c.NoContent(http.StatusNoContent)
}

type paymentRequest struct {
	Method PaymentMethod `json:"paymentMethod"`
}

func (h *Handler) Pay(c echo.Context) error {
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	inv, err := h.svc.MarkPaid(c.Request().Context(), c.Param("id"), req.Method)
	if err != nil {
		return apperr.HTTP(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, inv)
}
