package report

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
	mu      sync.RWMutex
	reports []*Report
	store   store.Store
}

func NewRepo(ctx context.Context, st store.Store) (Repository, error) {
	r := &memRepo{store: st}
	data, err := st.LoadBucket(ctx, store.BucketReports)
	if err != nil {
		return nil, fmt.Errorf("load reports: %w", err)
	}
	if data != nil {
		if err := json.Unmarshal(data, &r.reports); err != nil {
			return nil, fmt.Errorf("decode reports bucket: %w", err)
		}
	}
	return r, nil
}

func (r *memRepo) persist(ctx context.Context) error {
	data, err := json.Marshal(r.reports)
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}
	return r.store.SaveBucket(ctx, store.BucketReports, data)
}

func copyReport(rep *Report) *Report {
	cp := *rep
	cp.Results = append([]TestResult(nil), rep.Results...)
	return &cp
}

func (r *memRepo) List(_ context.Context) ([]*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Report, len(r.reports))
	for i, rep := range r.reports {
		out[i] = copyReport(rep)
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rep := range r.reports {
		if rep.ID == id {
			return copyReport(rep), nil
		}
	}
	return nil, apperr.NotFound("report", id)
}

func (r *memRepo) Create(ctx context.Context, rep *Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	if rep.Status == "" {
		rep.Status = StatusPending
	}
	if rep.Results == nil {
		rep.Results = []TestResult{}
	}
	for _, existing := range r.reports {
		if existing.ID == rep.ID {
			return fmt.Errorf("report %s already exists", rep.ID)
		}
	}
	r.reports = append(r.reports, copyReport(rep))
	return r.persist(ctx)
}

func (r *memRepo) Update(ctx context.Context, id string, upd Update) (*Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rep := range r.reports {
		if rep.ID != id {
			continue
		}
		if upd.ReferringDoctor != nil {
			rep.ReferringDoctor = *upd.ReferringDoctor
		}
		if upd.Notes != nil {
			rep.Notes = *upd.Notes
		}
		if err := r.persist(ctx); err != nil {
			return nil, err
		}
		return copyReport(rep), nil
	}
	return nil, apperr.NotFound("report", id)
}

func (r *memRepo) SetResults(ctx context.Context, id string, results []TestResult) (*Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rep := range r.reports {
		if rep.ID != id {
			continue
		}
		rep.Results = append([]TestResult(nil), results...)
		rep.Status = StatusCompleted
		if err := r.persist(ctx); err != nil {
			return nil, err
		}
		return copyReport(rep), nil
	}
	return nil, apperr.NotFound("report", id)
}

func (r *memRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rep := range r.reports {
		if rep.ID == id {
			r.reports = append(r.reports[:i], r.reports[i+1:]...)
			if err := r.persist(ctx); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) ListByPatient(_ context.Context, patientID string) ([]*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Report
	for _, rep := range r.reports {
		if rep.PatientID == patientID {
			out = append(out, copyReport(rep))
		}
	}
	return out, nil
}

func (r *memRepo) ListPending(_ context.Context) ([]*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Report
	for _, rep := range r.reports {
		if rep.Status == StatusPending {
			out = append(out, copyReport(rep))
		}
	}
	return out, nil
}

func (r *memRepo) Replace(ctx context.Context, reports []*Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = make([]*Report, len(reports))
	for i, rep := range reports {
		r.reports[i] = copyReport(rep)
	}
	return r.persist(ctx)
}
