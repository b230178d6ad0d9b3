package report

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Report, error)
	GetByID(ctx context.Context, id string) (*Report, error)
	Create(ctx context.Context, r *Report) error
	Update(ctx context.Context, id string, upd Update) (*Report, error)
	// SetResults replaces the full results list and marks the report
	// Completed. Used only by the completion workflow.
	SetResults(ctx context.Context, id string, results []TestResult) (*Report, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListByPatient(ctx context.Context, patientID string) ([]*Report, error)
	ListPending(ctx context.Context) ([]*Report, error)
	Replace(ctx context.Context, reports []*Report) error
}
