package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/medlab/medlab/internal/domain/billing"
	"github.com/medlab/medlab/internal/domain/catalog"
	"github.com/medlab/medlab/internal/domain/patient"
	"github.com/medlab/medlab/internal/domain/report"
	"github.com/medlab/medlab/internal/platform/apperr"
)

// Request is the single front-desk form: patient demographics, the
// ordered tests, and the payment taken at the counter.
type Request struct {
	Name            string                `json:"name"`
	Age             int                   `json:"age"`
	Gender          patient.Gender        `json:"gender"`
	Phone           string                `json:"phone"`
	Address         string                `json:"address"`
	ReferringDoctor string                `json:"referringDoctor"`
	Tests           []string              `json:"tests"`
	DiscountPercent float64               `json:"discountPercent"`
	AmountPaid      float64               `json:"amountPaid"`
	PaymentMethod   billing.PaymentMethod `json:"paymentMethod"`
}

// Result is everything one registration creates, plus the billing math
// that produced the invoice status.
type Result struct {
	Patient        *patient.Patient `json:"patient"`
	Invoice        *billing.Invoice `json:"invoice"`
	Reports        []*report.Report `json:"reports"`
	TotalAmount    float64          `json:"totalAmount"`
	DiscountAmount float64          `json:"discountAmount"`
	NetAmount      float64          `json:"netAmount"`
	AmountPaid     float64          `json:"amountPaid"`
	DueAmount      float64          `json:"dueAmount"`
}

type Service struct {
	patients patient.Repository
	tests    catalog.Repository
	reports  report.Repository
	invoices billing.Repository
}

func NewService(patients patient.Repository, tests catalog.Repository, reports report.Repository, invoices billing.Repository) *Service {
	return &Service{patients: patients, tests: tests, reports: reports, invoices: invoices}
}

// Register validates the whole form, then creates the patient, the
// invoice, and one pending report per ordered test, in that order.
// Validation collects every failure before reporting, and nothing is
// created unless the form is fully valid. The creates are sequential and
// not transactional: if a later step fails, earlier records remain and
// the error says how far registration got.
func (s *Service) Register(ctx context.Context, req Request) (*Result, error) {
	v := apperr.NewValidationError()
	if req.Name == "" {
		v.Add("name", "name is required")
	}
	if req.Age < 1 || req.Age > 120 {
		v.Add("age", "age must be between 1 and 120")
	}
	if !patient.ValidGender(req.Gender) {
		v.Add("gender", "gender must be Male, Female, or Other")
	}
	if req.Phone == "" {
		v.Add("phone", "phone is required")
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		v.Add("discountPercent", "discount must be between 0 and 100")
	}
	if req.AmountPaid < 0 {
		v.Add("amountPaid", "amount paid cannot be negative")
	}

	var (
		ordered []*catalog.Test
		total   float64
	)
	if len(req.Tests) == 0 {
		v.Add("tests", "at least one test must be selected")
	} else {
		for _, id := range req.Tests {
			test, err := s.tests.GetByID(ctx, id)
			var nf *apperr.NotFoundError
			if errors.As(err, &nf) {
				v.Add("tests", fmt.Sprintf("test %s does not exist", id))
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("resolve test %s: %w", id, err)
			}
			ordered = append(ordered, test)
			total += test.Price
		}
	}

	discountAmt := total * req.DiscountPercent / 100
	net := total - discountAmt

	if len(ordered) == len(req.Tests) && len(req.Tests) > 0 {
		if req.AmountPaid > net {
			v.Add("amountPaid", "amount paid cannot exceed the payable amount")
		}
	}

	status := billing.StatusPending
	switch {
	case req.AmountPaid >= net:
		status = billing.StatusPaid
	case req.AmountPaid > 0:
		status = billing.StatusDue
	}
	if status == billing.StatusPaid && req.PaymentMethod == "" {
		v.Add("paymentMethod", "payment method is required for a fully paid registration")
	}
	if req.PaymentMethod != "" && !billing.ValidMethod(req.PaymentMethod) {
		v.Add("paymentMethod", "unsupported payment method")
	}

	if v.HasErrors() {
		return nil, v
	}

	p := &patient.Patient{
		Name:    req.Name,
		Age:     req.Age,
		Gender:  req.Gender,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}

	inv := &billing.Invoice{
		PatientID:     p.ID,
		Tests:         req.Tests,
		TotalAmount:   net,
		Status:        status,
		PaymentMethod: req.PaymentMethod,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("patient %s created but invoice failed: %w", p.ID, err)
	}

	reports := make([]*report.Report, 0, len(ordered))
	for _, test := range ordered {
		rep := &report.Report{
			PatientID:       p.ID,
			TestID:          test.ID,
			ReferringDoctor: req.ReferringDoctor,
		}
		if err := s.reports.Create(ctx, rep); err != nil {
			return nil, fmt.Errorf("patient %s and invoice %s created but report for test %s failed: %w", p.ID, inv.ID, test.ID, err)
		}
		reports = append(reports, rep)
	}

	return &Result{
		Patient:        p,
		Invoice:        inv,
		Reports:        reports,
		TotalAmount:    total,
		DiscountAmount: discountAmt,
		NetAmount:      net,
		AmountPaid:     req.AmountPaid,
		DueAmount:      net - req.AmountPaid,
	}, nil
}
