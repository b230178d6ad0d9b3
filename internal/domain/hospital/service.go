package hospital

import (
	"context"

	"github.com/medlab/medlab/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (Details, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Update(ctx context.Context, upd Update) (Details, error) {
	v := apperr.NewValidationError()
	if upd.Name != nil && *upd.Name == "" {
		v.Add("name", "name cannot be empty")
	}
	if upd.Address != nil && *upd.Address == "" {
		v.Add("address", "address cannot be empty")
	}
	if upd.Phone != nil && *upd.Phone == "" {
		v.Add("phone", "phone cannot be empty")
	}
	if v.HasErrors() {
		return Details{}, v
	}
	return s.repo.Update(ctx, upd)
}

// Reset restores the built-in defaults, discarding any customization.
func (s *Service) Reset(ctx context.Context) (Details, error) {
	return s.repo.Replace(ctx, Defaults())
}
