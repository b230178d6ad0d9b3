package hospital

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/medlab/medlab/internal/platform/store"
)

type memRepo struct {
	mu      sync.RWMutex
	details Details
	store   store.Store
}

// NewRepo loads the facility record from its bucket, falling back to the
// built-in defaults when none has been saved yet.
func NewRepo(ctx context.Context, st store.Store) (Repository, error) {
	r := &memRepo{store: st, details: Defaults()}
	data, err := st.LoadBucket(ctx, store.BucketHospital)
	if err != nil {
		return nil, fmt.Errorf("load hospital details: %w", err)
	}
	if data != nil {
		if err := json.Unmarshal(data, &r.details); err != nil {
			return nil, fmt.Errorf("decode hospital bucket: %w", err)
		}
	}
	return r, nil
}

func (r *memRepo) persist(ctx context.Context) error {
	data, err := json.Marshal(r.details)
	if err != nil {
		return fmt.Errorf("encode hospital details: %w", err)
	}
	return r.store.SaveBucket(ctx, store.BucketHospital, data)
}

func (r *memRepo) Get(_ context.Context) (Details, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.details, nil
}

func (r *memRepo) Update(ctx context.Context, upd Update) (Details, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if upd.Name != nil {
		r.details.Name = *upd.Name
	}
	if upd.Address != nil {
		r.details.Address = *upd.Address
	}
	if upd.Phone != nil {
		r.details.Phone = *upd.Phone
	}
	if upd.Email != nil {
		r.details.Email = *upd.Email
	}
	if upd.Website != nil {
		r.details.Website = *upd.Website
	}
	if upd.RegistrationNumber != nil {
		r.details.RegistrationNumber = *upd.RegistrationNumber
	}
	if upd.TaxID != nil {
		r.details.TaxID = *upd.TaxID
	}
	if upd.Logo != nil {
		r.details.Logo = *upd.Logo
	}
	if upd.Footer != nil {
		r.details.Footer = *upd.Footer
	}
	if upd.BankDetails != nil {
		r.details.BankDetails = *upd.BankDetails
	}
	if err := r.persist(ctx); err != nil {
		return Details{}, err
	}
	return r.details, nil
}

func (r *memRepo) Replace(ctx context.Context, d Details) (Details, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.details = d
	if err := r.persist(ctx); err != nil {
		return Details{}, err
	}
	return r.details, nil
}
