package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandler_Complete(t *testing.T) {
	svc, tests := newFixture(t)
	cbc := seedCBC(t, tests)
	r := &Report{PatientID: "p1", TestID: cbc.ID}
	if err := svc.Create(context.Background(), r); err != nil {
		t.Fatalf("create: %v", err)
	}

	h := NewHandler(svc)
	e := echo.New()
	body := `{"values":{"Hemoglobin":"14.2","White Blood Cells":"12.5"},"notes":"recheck WBC"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(r.ID)

	if err := h.Complete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var got Report
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Status != StatusCompleted {
		t.Errorf("status = %q, want Completed", got.Status)
	}
	if len(got.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(got.Results))
	}
	if !got.Results[0].IsNormal {
		t.Error("hemoglobin 14.2 should be normal")
	}
	if got.Results[1].IsNormal {
		t.Error("wbc 12.5 should be abnormal")
	}
	if got.Notes != "recheck WBC" {
		t.Errorf("notes = %q", got.Notes)
	}
}

func TestHandler_Complete_UnknownReport(t *testing.T) {
	svc, _ := newFixture(t)
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"values":{}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.Complete(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
}

func TestHandler_List_PendingFilter(t *testing.T) {
	svc, tests := newFixture(t)
	cbc := seedCBC(t, tests)
	ctx := context.Background()

	first := &Report{PatientID: "p1", TestID: cbc.ID}
	second := &Report{PatientID: "p2", TestID: cbc.ID}
	for _, r := range []*Report{first, second} {
		if err := svc.Create(ctx, r); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := svc.CompleteResults(ctx, first.ID, map[string]string{"Hemoglobin": "14"}, nil); err != nil {
		t.Fatalf("complete: %v", err)
	}

	h := NewHandler(svc)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?status=Pending", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Data  []Report `json:"data"`
		Total int      `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 {
		t.Fatalf("total = %d, want 1", resp.Total)
	}
	if resp.Data[0].ID != second.ID {
		t.Errorf("pending report = %s, want %s", resp.Data[0].ID, second.ID)
	}
}
