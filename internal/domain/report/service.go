package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/medlab/medlab/internal/domain/catalog"
	"github.com/medlab/medlab/internal/platform/apperr"
	"github.com/medlab/medlab/pkg/normalrange"
)

type Service struct {
	repo  Repository
	tests catalog.Repository
}

func NewService(repo Repository, tests catalog.Repository) *Service {
	return &Service{repo: repo, tests: tests}
}

// Create registers an ad-hoc pending report. The referenced test must
// exist at creation time; the reference is not enforced afterwards.
func (s *Service) Create(ctx context.Context, r *Report) error {
	v := apperr.NewValidationError()
	if r.PatientID == "" {
		v.Add("patientId", "patientId is required")
	}
	if r.TestID == "" {
		v.Add("testId", "testId is required")
	}
	if v.HasErrors() {
		return v
	}
	if _, err := s.tests.GetByID(ctx, r.TestID); err != nil {
		return fmt.Errorf("resolve test for report: %w", err)
	}
	return s.repo.Create(ctx, r)
}

func (s *Service) Get(ctx context.Context, id string) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Report, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]*Report, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListPending(ctx context.Context) ([]*Report, error) {
	return s.repo.ListPending(ctx)
}

func (s *Service) Update(ctx context.Context, id string, upd Update) (*Report, error) {
	return s.repo.Update(ctx, id, upd)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// CompleteResults runs the completion workflow: every parameter of the
// report's test is evaluated in declared order against the submitted raw
// values, keyed by parameter name. A missing value is treated as empty,
// which never evaluates as normal. The results list is fully replaced on
// every invocation and the report ends up Completed; re-running on a
// completed report overwrites the results without reverting the status.
func (s *Service) CompleteResults(ctx context.Context, id string, values map[string]string, notes *string) (*Report, error) {
	rep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	test, err := s.tests.GetByID(ctx, rep.TestID)
	if err != nil {
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) {
			return nil, apperr.Inconsistent("report", rep.ID,
				fmt.Sprintf("test %s no longer exists", rep.TestID))
		}
		return nil, err
	}

	results := make([]TestResult, 0, len(test.Parameters))
	for _, param := range test.Parameters {
		value := values[param.Name]
		results = append(results, TestResult{
			ParameterID:   ParameterID(param.Name),
			ParameterName: param.Name,
			Value:         value,
			Unit:          param.Unit,
			NormalRange:   param.NormalRange,
			IsNormal:      normalrange.Evaluate(value, param.NormalRange),
		})
	}

	if notes != nil {
		if _, err := s.repo.Update(ctx, id, Update{Notes: notes}); err != nil {
			return nil, err
		}
	}
	return s.repo.SetResults(ctx, id, results)
}

// ParameterID derives a stable identifier from a parameter name:
// lowercase with runs of non-alphanumerics collapsed to single hyphens,
// so "White Blood Cells" becomes "white-blood-cells".
func ParameterID(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
