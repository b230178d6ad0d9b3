package docgen

import (
	"context"
	"errors"
	"testing"

	"github.com/medlab/medlab/internal/domain/billing"
	"github.com/medlab/medlab/internal/domain/catalog"
	"github.com/medlab/medlab/internal/domain/hospital"
	"github.com/medlab/medlab/internal/domain/patient"
	"github.com/medlab/medlab/internal/domain/report"
	"github.com/medlab/medlab/internal/platform/apperr"
	"github.com/medlab/medlab/internal/platform/store"
)

type fixture struct {
	svc      *Service
	patients patient.Repository
	tests    catalog.Repository
	reports  report.Repository
	invoices billing.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemStore()

	patients, err := patient.NewRepo(ctx, st)
	if err != nil {
		t.Fatalf("patient repo: %v", err)
	}
	tests, err := catalog.NewRepo(ctx, st)
	if err != nil {
		t.Fatalf("catalog repo: %v", err)
	}
	reports, err := report.NewRepo(ctx, st)
	if err != nil {
		t.Fatalf("report repo: %v", err)
	}
	invoices, err := billing.NewRepo(ctx, st)
	if err != nil {
		t.Fatalf("billing repo: %v", err)
	}
	hosp, err := hospital.NewRepo(ctx, st)
	if err != nil {
		t.Fatalf("hospital repo: %v", err)
	}

	f := &fixture{
		svc:      NewService(patients, tests, reports, invoices, hosp),
		patients: patients,
		tests:    tests,
		reports:  reports,
		invoices: invoices,
	}

	if err := patients.Create(ctx, &patient.Patient{ID: "p1", Name: "Jane Doe", Age: 34, Gender: patient.GenderFemale, Phone: "1"}); err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	if err := tests.Create(ctx, &catalog.Test{
		ID: "cbc", Name: "Complete Blood Count", Category: "Hematology", Price: 800,
		Parameters: []catalog.Parameter{{Name: "Hemoglobin", Unit: "g/dL", NormalRange: "13.5-17.5"}},
	}); err != nil {
		t.Fatalf("seed test: %v", err)
	}
	if err := reports.Create(ctx, &report.Report{ID: "r1", PatientID: "p1", TestID: "cbc", ReferringDoctor: "Dr. Mehta"}); err != nil {
		t.Fatalf("seed report: %v", err)
	}
	if err := invoices.Create(ctx, &billing.Invoice{ID: "i1", PatientID: "p1", Tests: []string{"cbc"}, TotalAmount: 800}); err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return f
}

func TestReportDocument_DenormalizesEverything(t *testing.T) {
	f := newFixture(t)
	doc, err := f.svc.ReportDocument(context.Background(), "r1")
	if err != nil {
		t.Fatalf("report document: %v", err)
	}
	if doc.PatientName != "Jane Doe" || doc.PatientAge != 34 || doc.PatientGender != "Female" {
		t.Errorf("patient fields wrong: %+v", doc)
	}
	if doc.TestName != "Complete Blood Count" || doc.TestCategory != "Hematology" {
		t.Errorf("test fields wrong: %+v", doc)
	}
	if doc.ReferringDoctor != "Dr. Mehta" {
		t.Errorf("referringDoctor = %q", doc.ReferringDoctor)
	}
	if doc.HospitalDetails.Name != hospital.Defaults().Name {
		t.Errorf("hospital name = %q", doc.HospitalDetails.Name)
	}
}

func TestReportDocument_DeletedTestGetsPlaceholderName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.tests.Delete(ctx, "cbc"); err != nil {
		t.Fatalf("delete test: %v", err)
	}
	doc, err := f.svc.ReportDocument(ctx, "r1")
	if err != nil {
		t.Fatalf("report document: %v", err)
	}
	if doc.TestName != "Unknown Test" {
		t.Errorf("testName = %q, want placeholder", doc.TestName)
	}
}

func TestReportDocument_DeletedPatientIsInconsistent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.patients.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete patient: %v", err)
	}
	_, err := f.svc.ReportDocument(ctx, "r1")
	var inc *apperr.InconsistentStateError
	if !errors.As(err, &inc) {
		t.Fatalf("expected InconsistentStateError, got %v", err)
	}
}

func TestInvoiceDocument_DeletedTestGetsZeroPriceLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.tests.Delete(ctx, "cbc"); err != nil {
		t.Fatalf("delete test: %v", err)
	}
	doc, err := f.svc.InvoiceDocument(ctx, "i1")
	if err != nil {
		t.Fatalf("invoice document: %v", err)
	}
	if len(doc.Tests) != 1 {
		t.Fatalf("lines = %d, want 1", len(doc.Tests))
	}
	if doc.Tests[0].Name != "Unknown Test" || doc.Tests[0].Price != 0 {
		t.Errorf("placeholder line wrong: %+v", doc.Tests[0])
	}
	if doc.TotalAmount != 800 {
		t.Errorf("stored total changed: %v", doc.TotalAmount)
	}
}

func TestInvoiceDocument_ResolvesLines(t *testing.T) {
	f := newFixture(t)
	doc, err := f.svc.InvoiceDocument(context.Background(), "i1")
	if err != nil {
		t.Fatalf("invoice document: %v", err)
	}
	if doc.Tests[0].Name != "Complete Blood Count" || doc.Tests[0].Price != 800 {
		t.Errorf("line not resolved: %+v", doc.Tests[0])
	}
	if doc.Status != "Pending" {
		t.Errorf("status = %q", doc.Status)
	}
}

func TestUnknownIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	var nf *apperr.NotFoundError
	if _, err := f.svc.ReportDocument(ctx, "nope"); !errors.As(err, &nf) {
		t.Errorf("report: expected NotFoundError, got %v", err)
	}
	if _, err := f.svc.InvoiceDocument(ctx, "nope"); !errors.As(err, &nf) {
		t.Errorf("invoice: expected NotFoundError, got %v", err)
	}
}
