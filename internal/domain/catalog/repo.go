package catalog

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Test, error)
	GetByID(ctx context.Context, id string) (*Test, error)
	Create(ctx context.Context, t *Test) error
	Update(ctx context.Context, id string, upd Update) (*Test, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, query string) ([]*Test, error)
	Replace(ctx context.Context, tests []*Test) error
}
