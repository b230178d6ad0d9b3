package hospital

import "context"

type Repository interface {
	Get(ctx context.Context) (Details, error)
	Update(ctx context.Context, upd Update) (Details, error)
	// Replace overwrites the whole record, used by reset and import.
	Replace(ctx context.Context, d Details) (Details, error)
}
