package billing

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

func (s *Service) Create(ctx context.Context, inv *Invoice) error {
	v := apperr.NewValidationError()
	if inv.PatientID == "" {
		v.Add("patientId", "patientId is required")
	}
	if len(inv.Tests) == 0 {
		v.Add("tests", "at least one test is required")
	}
	if inv.TotalAmount < 0 {
		v.Add("totalAmount", "total amount cannot be negative")
	}
	if inv.Status != "" && !ValidStatus(inv.Status) {
		v.Add("status", "status must be Pending, Due, or Paid")
	}
	if inv.Status == StatusPaid && inv.PaymentMethod == "" {
		v.Add("paymentMethod", "payment method is required for a paid invoice")
	}
	if inv.PaymentMethod != "" && !ValidMethod(inv.PaymentMethod) {
		v.Add("paymentMethod", "unsupported payment method")
	}
	if v.HasErrors() {
		return v
	}
	return s.repo.Create(ctx, inv)
}

func (s *Service) Get(ctx context.Context, id string) (*Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Invoice, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]*Invoice, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListUnpaid(ctx context.Context) ([]*Invoice, error) {
	return s.repo.ListUnpaid(ctx)
}

func (s *Service) Update(ctx context.Context, id string, upd Update) (*Invoice, error) {
	v := apperr.NewValidationError()
	if upd.Status != nil && !ValidStatus(*upd.Status) {
		v.Add("status", "status must be Pending, Due, or Paid")
	}
	if upd.TotalAmount != nil && *upd.TotalAmount < 0 {
		v.Add("totalAmount", "total amount cannot be negative")
	}
	if v.HasErrors() {
		return nil, v
	}
	return s.repo.Update(ctx, id, upd)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// MarkPaid runs the payment workflow: status becomes Paid and the method
// is recorded. Calling it again overwrites the method without error; no
// payment history is kept.
func (s *Service) MarkPaid(ctx context.Context, id string, method PaymentMethod) (*Invoice, error) {
	if !ValidMethod(method) {
		v := apperr.NewValidationError()
		v.Add("paymentMethod", "unsupported payment method")
		return nil, v
	}
	return s.repo.SetPayment(ctx, id, StatusPaid, method)
}
