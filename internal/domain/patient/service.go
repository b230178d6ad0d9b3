package patient

import (
	"context"
	"strings"

	"github.com/medlab/medlab/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Validate checks patient fields, collecting every failure.
func Validate(name string, age int, gender Gender, phone string) *apperr.ValidationError {
	v := apperr.NewValidationError()
	if strings.TrimSpace(name) == "" {
		v.Add("name", "name is required")
	}
	if age <= 0 || age > 120 {
		v.Add("age", "age must be between 1 and 120")
	}
	if !ValidGender(gender) {
		v.Add("gender", "gender must be Male, Female, or Other")
	}
	if strings.TrimSpace(phone) == "" {
		v.Add("phone", "phone is required")
	}
	return v
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if v := Validate(p.Name, p.Age, p.Gender, p.Phone); v.HasErrors() {
		return v
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) Search(ctx context.Context, query string) ([]*Patient, error) {
	return s.repo.Search(ctx, query)
}

func (s *Service) Update(ctx context.Context, id string, upd Update) (*Patient, error) {
	v := apperr.NewValidationError()
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		v.Add("name", "name is required")
	}
	if upd.Age != nil && (*upd.Age <= 0 || *upd.Age > 120) {
		v.Add("age", "age must be between 1 and 120")
	}
	if upd.Gender != nil && !ValidGender(*upd.Gender) {
		v.Add("gender", "gender must be Male, Female, or Other")
	}
	if upd.Phone != nil && strings.TrimSpace(*upd.Phone) == "" {
		v.Add("phone", "phone is required")
	}
	if v.HasErrors() {
		return nil, v
	}
	return s.repo.Update(ctx, id, upd)
}

// Delete removes the patient. Reports and invoices that reference the
// patient are left in place; the original system never cascaded deletes
// and document rendering surfaces the dangling reference instead.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
