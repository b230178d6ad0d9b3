package billing

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Invoice, error)
	GetByID(ctx context.Context, id string) (*Invoice, error)
	Create(ctx context.Context, inv *Invoice) error
	Update(ctx context.Context, id string, upd Update) (*Invoice, error)
	// SetPayment records the payment workflow's status and method change.
	SetPayment(ctx context.Context, id string, status Status, method PaymentMethod) (*Invoice, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListByPatient(ctx context.Context, patientID string) ([]*Invoice, error)
	// ListUnpaid returns invoices with status Pending or Due.
	ListUnpaid(ctx context.Context) ([]*Invoice, error)
	Replace(ctx context.Context, invoices []*Invoice) error
}
