package catalog

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

type memRepo struct {
	mu    sync.RWMutex
	tests []*Test
	store store.Store
}

func NewRepo(ctx context.Context, st store.Store) (Repository, error) {
	r := &memRepo{store: st}
	data, err := st.LoadBucket(ctx, store.BucketTests)
	if err != nil {
		return nil, fmt.Errorf("load tests: %w", err)
	}
	if data != nil {
		if err := json.Unmarshal(data, &r.tests); err != nil {
			return nil, fmt.Errorf("decode tests bucket: %w", err)
		}
	}
	return r, nil
}

func (r *memRepo) persist(ctx context.Context) error {
	data, err := json.Marshal(r.tests)
	if err != nil {
		return fmt.Errorf("encode tests: %w", err)
	}
	return r.store.SaveBucket(ctx, store.BucketTests, data)
}

func copyTest(t *Test) *Test {
	cp := *t
	cp.Parameters = append([]Parameter(nil), t.Parameters...)
	return &cp
}

func (r *memRepo) List(_ context.Context) ([]*Test, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Test, len(r.tests))
	for i, t := range r.tests {
		out[i] = copyTest(t)
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Test, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tests {
		if t.ID == id {
			return copyTest(t), nil
		}
	}
	return nil, apperr.NotFound("test", id)
}

func (r *memRepo) Create(ctx context.Context, t *Test) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	for _, existing := range r.tests {
		if existing.ID == t.ID {
			return fmt.Errorf("test %s already exists", t.ID)
		}
	}
	r.tests = append(r.tests, copyTest(t))
	return r.persist(ctx)
}

func (r *memRepo) Update(ctx context.Context, id string, upd Update) (*Test, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tests {
		if t.ID != id {
			continue
		}
		if upd.Name != nil {
			t.Name = *upd.Name
		}
		if upd.Category != nil {
			t.Category = *upd.Category
		}
		if upd.Parameters != nil {
			t.Parameters = append([]Parameter(nil), (*upd.Parameters)...)
		}
		if upd.Price != nil {
			t.Price = *upd.Price
		}
		if err := r.persist(ctx); err != nil {
			return nil, err
		}
		return copyTest(t), nil
	}
	return nil, apperr.NotFound("test", id)
}

func (r *memRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.tests {
		if t.ID == id {
			r.tests = append(r.tests[:i], r.tests[i+1:]...)
			if err := r.persist(ctx); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) Search(_ context.Context, query string) ([]*Test, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	var out []*Test
	for _, t := range r.tests {
		if q == "" ||
			strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Category), q) {
			out = append(out, copyTest(t))
		}
	}
	return out, nil
}

func (r *memRepo) Replace(ctx context.Context, tests []*Test) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tests = make([]*Test, len(tests))
	for i, t := range tests {
		r.tests[i] = copyTest(t)
	}
	return r.persist(ctx)
}
