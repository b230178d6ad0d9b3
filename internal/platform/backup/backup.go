// Package backup implements whole-dataset export and import as a single
// JSON document, the unit of data portability between installations.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medlab/medlab/internal/domain/billing"
	"github.com/medlab/medlab/internal/domain/catalog"
	"github.com/medlab/medlab/internal/domain/hospital"
	"github.com/medlab/medlab/internal/domain/patient"
	"github.com/medlab/medlab/internal/domain/report"
	"github.com/medlab/medlab/internal/platform/apperr"
)

// Version identifies the document layout for forward compatibility.
const Version = "1.0.0"

// Document is the full-dataset interchange format. The four entity
// collections are mandatory on import; hospitalDetails is optional and
// left untouched when absent.
type Document struct {
	Patients        []*patient.Patient `json:"patients"`
	Tests           []*catalog.Test    `json:"tests"`
	Reports         []*report.Report   `json:"reports"`
	Invoices        []*billing.Invoice `json:"invoices"`
	HospitalDetails *hospital.Details  `json:"hospitalDetails,omitempty"`
	ExportDate      time.Time          `json:"exportDate"`
	Version         string             `json:"version"`
}

type Service struct {
	patients patient.Repository
	tests    catalog.Repository
	reports  report.Repository
	invoices billing.Repository
	hospital hospital.Repository
	log      zerolog.Logger
}

func NewService(
	patients patient.Repository,
	tests catalog.Repository,
	reports report.Repository,
	invoices billing.Repository,
	hosp hospital.Repository,
	log zerolog.Logger,
) *Service {
	return &Service{
		patients: patients,
		tests:    tests,
		reports:  reports,
		invoices: invoices,
		hospital: hosp,
		log:      log,
	}
}

// Export snapshots every collection plus the facility details into one
// document stamped with the export time and format version.
func (s *Service) Export(ctx context.Context) (*Document, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("export patients: %w", err)
	}
	tests, err := s.tests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("export tests: %w", err)
	}
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("export reports: %w", err)
	}
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("export invoices: %w", err)
	}
	details, err := s.hospital.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("export hospital details: %w", err)
	}

	s.log.Info().
		Int("patients", len(patients)).
		Int("tests", len(tests)).
		Int("reports", len(reports)).
		Int("invoices", len(invoices)).
		Msg("dataset exported")

	return &Document{
		Patients:        patients,
		Tests:           tests,
		Reports:         reports,
		Invoices:        invoices,
		HospitalDetails: &details,
		ExportDate:      time.Now().UTC(),
		Version:         Version,
	}, nil
}

// Import validates and applies a document produced by Export, replacing
// every collection wholesale. All four entity keys must be present or
// the document is rejected and nothing changes. Referenced collections
// (tests, patients) are written before the referencing ones (reports,
// invoices).
func (s *Service) Import(ctx context.Context, raw []byte) (*Document, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		v := apperr.NewValidationError()
		v.Add("document", "not a valid JSON document")
		return nil, v
	}
	v := apperr.NewValidationError()
	for _, key := range []string{"patients", "tests", "reports", "invoices"} {
		if _, ok := keys[key]; !ok {
			v.Add(key, "missing required data collection")
		}
	}
	if v.HasErrors() {
		return nil, v
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		v := apperr.NewValidationError()
		v.Add("document", fmt.Sprintf("malformed data collection: %v", err))
		return nil, v
	}

	if err := s.tests.Replace(ctx, doc.Tests); err != nil {
		return nil, fmt.Errorf("import tests: %w", err)
	}
	if err := s.patients.Replace(ctx, doc.Patients); err != nil {
		return nil, fmt.Errorf("import patients: %w", err)
	}
	if err := s.reports.Replace(ctx, doc.Reports); err != nil {
		return nil, fmt.Errorf("import reports: %w", err)
	}
	if err := s.invoices.Replace(ctx, doc.Invoices); err != nil {
		return nil, fmt.Errorf("import invoices: %w", err)
	}
	if doc.HospitalDetails != nil {
		if _, err := s.hospital.Replace(ctx, *doc.HospitalDetails); err != nil {
			return nil, fmt.Errorf("import hospital details: %w", err)
		}
	}

	s.log.Info().
		Int("patients", len(doc.Patients)).
		Int("tests", len(doc.Tests)).
		Int("reports", len(doc.Reports)).
		Int("invoices", len(doc.Invoices)).
		Str("version", doc.Version).
		Msg("dataset imported")

	return &doc, nil
}
