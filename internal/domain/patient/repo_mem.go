package patient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medlab/medlab/internal/platform/apperr"
	"github.com/medlab/medlab/internal/platform/store"
)

// memRepo keeps patients in insertion order behind a mutex and writes the
// whole collection to its bucket after every mutation.
type memRepo struct {
	mu       sync.RWMutex
	patients []*Patient
	store    store.Store
}

// NewRepo loads the patients bucket from the store. An absent bucket is an
// empty collection.
func NewRepo(ctx context.Context, st store.Store) (Repository, error) {
	r := &memRepo{store: st}
	data, err := st.LoadBucket(ctx, store.BucketPatients)
	if err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}
	if data != nil {
		if err := json.Unmarshal(data, &r.patients); err != nil {
			return nil, fmt.Errorf("decode patients bucket: %w", err)
		}
	}
	return r, nil
}

// persist must be called with the write lock held.
func (r *memRepo) persist(ctx context.Context) error {
	data, err := json.Marshal(r.patients)
	if err != nil {
		return fmt.Errorf("encode patients: %w", err)
	}
	return r.store.SaveBucket(ctx, store.BucketPatients, data)
}

func (r *memRepo) List(_ context.Context) ([]*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Patient, len(r.patients))
	for i, p := range r.patients {
		cp := *p
		out[i] = &cp
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.patients {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("patient", id)
}

func (r *memRepo) Create(ctx context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	for _, existing := range r.patients {
		if existing.ID == p.ID {
			return fmt.Errorf("patient %s already exists", p.ID)
		}
	}
	cp := *p
	r.patients = append(r.patients, &cp)
	return r.persist(ctx)
}

func (r *memRepo) Update(ctx context.Context, id string, upd Update) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.patients {
		if p.ID != id {
			continue
		}
		if upd.Name != nil {
			p.Name = *upd.Name
		}
		if upd.Age != nil {
			p.Age = *upd.Age
		}
		if upd.Gender != nil {
			p.Gender = *upd.Gender
		}
		if upd.Phone != nil {
			p.Phone = *upd.Phone
		}
		if upd.Address != nil {
			p.Address = *upd.Address
		}
		if err := r.persist(ctx); err != nil {
			return nil, err
		}
		cp := *p
		return &cp, nil
	}
	return nil, apperr.NotFound("patient", id)
}

func (r *memRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.patients {
		if p.ID == id {
			r.patients = append(r.patients[:i], r.patients[i+1:]...)
			if err := r.persist(ctx); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) Search(_ context.Context, query string) ([]*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	var out []*Patient
	for _, p := range r.patients {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Phone), q) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRepo) Replace(ctx context.Context, patients []*Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients = make([]*Patient, len(patients))
	for i, p := range patients {
		cp := *p
		r.patients[i] = &cp
	}
	return r.persist(ctx)
}
