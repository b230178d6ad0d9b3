package patient

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Patient, error)
	GetByID(ctx context.Context, id string) (*Patient, error)
	Create(ctx context.Context, p *Patient) error
	Update(ctx context.Context, id string, upd Update) (*Patient, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, query string) ([]*Patient, error)
	// Replace swaps the whole collection, preserving the given ids and
	// timestamps. Used by bulk import.
	Replace(ctx context.Context, patients []*Patient) error
}
