package backup

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
	hospital hospital.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemStore()

	patients, err := patient.NewRepo(ctx, st)
	require.NoError(t, err)
	tests, err := catalog.NewRepo(ctx, st)
	require.NoError(t, err)
	reports, err := report.NewRepo(ctx, st)
	require.NoError(t, err)
	invoices, err := billing.NewRepo(ctx, st)
	require.NoError(t, err)
	hosp, err := hospital.NewRepo(ctx, st)
	require.NoError(t, err)

	return &fixture{
		svc:      NewService(patients, tests, reports, invoices, hosp, zerolog.Nop()),
		patients: patients,
		tests:    tests,
		reports:  reports,
		invoices: invoices,
		hospital: hosp,
	}
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.tests.Create(ctx, &catalog.Test{
		ID: "cbc", Name: "Complete Blood Count", Category: "Hematology", Price: 800,
		Parameters: []catalog.Parameter{{Name: "Hemoglobin", Unit: "g/dL", NormalRange: "13.5-17.5"}},
	}))
	require.NoError(t, f.patients.Create(ctx, &patient.Patient{
		ID: "p1", Name: "Jane Doe", Age: 34, Gender: patient.GenderFemale, Phone: "1",
	}))
	require.NoError(t, f.reports.Create(ctx, &report.Report{ID: "r1", PatientID: "p1", TestID: "cbc"}))
	require.NoError(t, f.invoices.Create(ctx, &billing.Invoice{
		ID: "i1", PatientID: "p1", Tests: []string{"cbc"}, TotalAmount: 800,
	}))
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := newFixture(t)
	src.seed(t)
	ctx := context.Background()

	name := "City Path Lab"
	_, err := hospital.NewService(src.hospital).Update(ctx, hospital.Update{Name: &name})
	require.NoError(t, err)

	doc, err := src.svc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, Version, doc.Version)
	assert.False(t, doc.ExportDate.IsZero())

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	dst := newFixture(t)
	_, err = dst.svc.Import(ctx, raw)
	require.NoError(t, err)

	patients, err := dst.patients.List(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "Jane Doe", patients[0].Name)

	tests, err := dst.tests.List(ctx)
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Equal(t, "Complete Blood Count", tests[0].Name)

	reports, err := dst.reports.List(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, report.StatusPending, reports[0].Status)

	invoices, err := dst.invoices.List(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, 800.0, invoices[0].TotalAmount)

	details, err := dst.hospital.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "City Path Lab", details.Name)
}

func TestImport_ReplacesExistingData(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()

	raw, err := json.Marshal(Document{
		Patients: []*patient.Patient{{ID: "p9", Name: "New Patient", Age: 20, Gender: patient.GenderMale, Phone: "2"}},
		Tests:    []*catalog.Test{},
		Reports:  []*report.Report{},
		Invoices: []*billing.Invoice{},
		Version:  Version,
	})
	require.NoError(t, err)

	_, err = f.svc.Import(ctx, raw)
	require.NoError(t, err)

	patients, err := f.patients.List(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "p9", patients[0].ID)

	tests, err := f.tests.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tests)
}

func TestImport_MissingCollectionsRejectedWholesale(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()

	// reports and invoices keys absent
	raw := []byte(`{"patients":[],"tests":[]}`)
	_, err := f.svc.Import(ctx, raw)
	var v *apperr.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "reports")
	assert.Contains(t, v.Fields, "invoices")

	// existing data untouched
	patients, err := f.patients.List(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 1)
}

func TestImport_MissingHospitalDetailsLeavesCurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	name := "City Path Lab"
	_, err := hospital.NewService(f.hospital).Update(ctx, hospital.Update{Name: &name})
	require.NoError(t, err)

	raw := []byte(`{"patients":[],"tests":[],"reports":[],"invoices":[]}`)
	_, err = f.svc.Import(ctx, raw)
	require.NoError(t, err)

	details, err := f.hospital.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "City Path Lab", details.Name)
}

func TestImport_MalformedJSONRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Import(context.Background(), []byte("not json"))
	var v *apperr.ValidationError
	require.ErrorAs(t, err, &v)
}
