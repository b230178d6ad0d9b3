package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medlab/medlab/internal/platform/apperr"
	"github.com/medlab/medlab/internal/platform/store"
)

type memRepo struct {
	mu       sync.RWMutex
	invoices []*Invoice
	store    store.Store
}

func NewRepo(ctx context.Context, st store.Store) (Repository, error) {
	r := &memRepo{store: st}
	data, err := st.LoadBucket(ctx, store.BucketInvoices)
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}
	if data != nil {
		if err := json.Unmarshal(data, &r.invoices); err != nil {
			return nil, fmt.Errorf("decode invoices bucket: %w", err)
		}
	}
	return r, nil
}

func (r *memRepo) persist(ctx context.Context) error {
	data, err := json.Marshal(r.invoices)
	if err != nil {
		return fmt.Errorf("encode invoices: %w", err)
	}
	return r.store.SaveBucket(ctx, store.BucketInvoices, data)
}

func copyInvoice(inv *Invoice) *Invoice {
	cp := *inv
	cp.Tests = append([]string(nil), inv.Tests...)
	return &cp
}

func (r *memRepo) List(_ context.Context) ([]*Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Invoice, len(r.invoices))
	for i, inv := range r.invoices {
		out[i] = copyInvoice(inv)
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, inv := range r.invoices {
		if inv.ID == id {
			return copyInvoice(inv), nil
		}
	}
	return nil, apperr.NotFound("invoice", id)
}

func (r *memRepo) Create(ctx context.Context, inv *Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	if inv.Status == "" {
		inv.Status = StatusPending
	}
	for _, existing := range r.invoices {
		if existing.ID == inv.ID {
			return fmt.Errorf("invoice %s already exists", inv.ID)
		}
	}
	r.invoices = append(r.invoices, copyInvoice(inv))
	return r.persist(ctx)
}

func (r *memRepo) Update(ctx context.Context, id string, upd Update) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.ID != id {
			continue
		}
		if upd.Tests != nil {
			inv.Tests = append([]string(nil), (*upd.Tests)...)
		}
		if upd.TotalAmount != nil {
			inv.TotalAmount = *upd.TotalAmount
		}
		if upd.Status != nil {
			inv.Status = *upd.Status
		}
		if err := r.persist(ctx); err != nil {
			return nil, err
		}
		return copyInvoice(inv), nil
	}
	return nil, apperr.NotFound("invoice", id)
}

func (r *memRepo) SetPayment(ctx context.Context, id string, status Status, method PaymentMethod) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.ID != id {
			continue
		}
		inv.Status = status
		if method != "" {
			inv.PaymentMethod = method
		}
		if err := r.persist(ctx); err != nil {
			return nil, err
		}
		return copyInvoice(inv), nil
	}
	return nil, apperr.NotFound("invoice", id)
}

func (r *memRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, inv := range r.invoices {
		if inv.ID == id {
			r.invoices = append(r.invoices[:i], r.invoices[i+1:]...)
			if err := r.persist(ctx); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) ListByPatient(_ context.Context, patientID string) ([]*Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Invoice
	for _, inv := range r.invoices {
		if inv.PatientID == patientID {
			out = append(out, copyInvoice(inv))
		}
	}
	return out, nil
}

func (r *memRepo) ListUnpaid(_ context.Context) ([]*Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Invoice
	for _, inv := range r.invoices {
		if inv.Status == StatusPending || inv.Status == StatusDue {
			out = append(out, copyInvoice(inv))
		}
	}
	return out, nil
}

func (r *memRepo) Replace(ctx context.Context, invoices []*Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices = make([]*Invoice, len(invoices))
	for i, inv := range invoices {
		r.invoices[i] = copyInvoice(inv)
	}
	return r.persist(ctx)
}
