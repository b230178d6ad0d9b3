// Package docgen assembles the printable document payloads for reports
// and invoices: fully denormalized snapshots carrying patient, test, and
// facility data so a renderer needs no further lookups.
package docgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medlab/medlab/internal/domain/billing"
	"github.com/medlab/medlab/internal/domain/catalog"
	"github.com/medlab/medlab/internal/domain/hospital"
	"github.com/medlab/medlab/internal/domain/patient"
	"github.com/medlab/medlab/internal/domain/report"
	"github.com/medlab/medlab/internal/platform/apperr"
)

// unknownTestName is shown when a referenced catalog test was deleted
// after the record was created. References are not cleaned up on delete,
// so documents must tolerate them.
const unknownTestName = "Unknown Test"

// ReportDocument is the print payload for one completed or pending report.
type ReportDocument struct {
	ID              string              `json:"id"`
	Date            time.Time           `json:"date"`
	PatientName     string              `json:"patientName"`
	PatientID       string              `json:"patientId"`
	PatientAge      int                 `json:"patientAge"`
	PatientGender   string              `json:"patientGender"`
	TestName        string              `json:"testName"`
	TestCategory    string              `json:"testCategory,omitempty"`
	ReferringDoctor string              `json:"referringDoctor,omitempty"`
	Results         []report.TestResult `json:"results"`
	Notes           string              `json:"notes,omitempty"`
	HospitalDetails hospital.Details    `json:"hospitalDetails"`
}

// InvoiceLine is one billed test on an invoice document.
type InvoiceLine struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// InvoiceDocument is the print payload for one invoice.
type InvoiceDocument struct {
	ID              string           `json:"id"`
	Date            time.Time        `json:"date"`
	PatientName     string           `json:"patientName"`
	PatientID       string           `json:"patientId"`
	Tests           []InvoiceLine    `json:"tests"`
	TotalAmount     float64          `json:"totalAmount"`
	Status          string           `json:"status"`
	PaymentMethod   string           `json:"paymentMethod,omitempty"`
	HospitalDetails hospital.Details `json:"hospitalDetails"`
}

type Service struct {
	patients patient.Repository
	tests    catalog.Repository
	reports  report.Repository
	invoices billing.Repository
	hospital hospital.Repository
}

func NewService(
	patients patient.Repository,
	tests catalog.Repository,
	reports report.Repository,
	invoices billing.Repository,
	hosp hospital.Repository,
) *Service {
	return &Service{
		patients: patients,
		tests:    tests,
		reports:  reports,
		invoices: invoices,
		hospital: hosp,
	}
}

// ReportDocument builds the payload for the given report. The patient
// must still exist; a deleted test is tolerated and rendered with a
// placeholder name, since results carry their own snapshots.
func (s *Service) ReportDocument(ctx context.Context, reportID string) (*ReportDocument, error) {
	rep, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	p, err := s.patients.GetByID(ctx, rep.PatientID)
	if err != nil {
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) {
			return nil, apperr.Inconsistent("report", reportID, fmt.Sprintf("patient %s no longer exists", rep.PatientID))
		}
		return nil, err
	}

	testName := unknownTestName
	testCategory := ""
	if test, err := s.tests.GetByID(ctx, rep.TestID); err == nil {
		testName = test.Name
		testCategory = test.Category
	}

	details, err := s.hospital.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &ReportDocument{
		ID:              rep.ID,
		Date:            rep.CreatedAt,
		PatientName:     p.Name,
		PatientID:       p.ID,
		PatientAge:      p.Age,
		PatientGender:   string(p.Gender),
		TestName:        testName,
		TestCategory:    testCategory,
		ReferringDoctor: rep.ReferringDoctor,
		Results:         rep.Results,
		Notes:           rep.Notes,
		HospitalDetails: details,
	}, nil
}

// InvoiceDocument builds the payload for the given invoice. Deleted test
// references become placeholder lines with zero price; the stored total
// is used as-is.
func (s *Service) InvoiceDocument(ctx context.Context, invoiceID string) (*InvoiceDocument, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	p, err := s.patients.GetByID(ctx, inv.PatientID)
	if err != nil {
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) {
			return nil, apperr.Inconsistent("invoice", invoiceID, fmt.Sprintf("patient %s no longer exists", inv.PatientID))
		}
		return nil, err
	}

	lines := make([]InvoiceLine, 0, len(inv.Tests))
	for _, testID := range inv.Tests {
		line := InvoiceLine{ID: testID, Name: unknownTestName}
		if test, err := s.tests.GetByID(ctx, testID); err == nil {
			line.Name = test.Name
			line.Price = test.Price
		}
		lines = append(lines, line)
	}

	details, err := s.hospital.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &InvoiceDocument{
		ID:              inv.ID,
		Date:            inv.CreatedAt,
		PatientName:     p.Name,
		PatientID:       p.ID,
		Tests:           lines,
		TotalAmount:     inv.TotalAmount,
		Status:          string(inv.Status),
		PaymentMethod:   string(inv.PaymentMethod),
		HospitalDetails: details,
	}, nil
}
