package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/medlab/medlab/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateFields(name string, price float64, parameters []Parameter) *apperr.ValidationError {
	v := apperr.NewValidationError()
	if strings.TrimSpace(name) == "" {
		v.Add("name", "test name is required")
	}
	if price < 0 {
		v.Add("price", "price cannot be negative")
	}
	if len(parameters) == 0 {
		v.Add("parameters", "at least one parameter is required")
	}
	for i, p := range parameters {
		if strings.TrimSpace(p.Name) == "" {
			v.Add(fmt.Sprintf("parameters[%d].name", i), "parameter name is required")
		}
		if strings.TrimSpace(p.NormalRange) == "" {
			v.Add(fmt.Sprintf("parameters[%d].normalRange", i), "normal range is required")
		}
	}
	return v
}

func (s *Service) Create(ctx context.Context, t *Test) error {
	if v := validateFields(t.Name, t.Price, t.Parameters); v.HasErrors() {
		return v
	}
	return s.repo.Create(ctx, t)
}

func (s *Service) Get(ctx context.Context, id string) (*Test, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Test, error) {
	return s.repo.List(ctx)
}

func (s *Service) Search(ctx context.Context, query string) ([]*Test, error) {
	return s.repo.Search(ctx, query)
}

func (s *Service) Update(ctx context.Context, id string, upd Update) (*Test, error) {
	v := apperr.NewValidationError()
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		v.Add("name", "test name is required")
	}
	if upd.Price != nil && *upd.Price < 0 {
		v.Add("price", "price cannot be negative")
	}
	if upd.Parameters != nil {
		if sub := validateFields("x", 0, *upd.Parameters); sub.HasErrors() {
			for f, m := range sub.Fields {
				v.Add(f, m)
			}
		}
	}
	if v.HasErrors() {
		return nil, v
	}
	return s.repo.Update(ctx, id, upd)
}

// Delete removes the catalog entry. Reports created against the test keep
// their snapshot results and their (now dangling) testId; already-created
// data is never rewritten retroactively.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
