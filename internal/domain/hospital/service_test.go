package hospital

import (
	"context"
	"testing"

	"github.com/medlab/medlab/internal/platform/store"
)

func newTestService(t *testing.T, st store.Store) *Service {
	t.Helper()
	repo, err := NewRepo(context.Background(), st)
	if err != nil {
		t.Fatalf("NewRepo: %v", err)
	}
	return NewService(repo)
}

func TestGet_ReturnsDefaultsWhenUnset(t *testing.T) {
	svc := newTestService(t, store.NewMemStore())
	d, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if d != Defaults() {
		t.Errorf("got %+v, want built-in defaults", d)
	}
}

func TestUpdate_MergesAndPersists(t *testing.T) {
	st := store.NewMemStore()
	svc := newTestService(t, st)
	ctx := context.Background()

	name := "City Path Lab"
	bank := "HDFC 00012345"
	d, err := svc.Update(ctx, Update{Name: &name, BankDetails: &bank})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if d.Name != "City Path Lab" || d.BankDetails != "HDFC 00012345" {
		t.Errorf("update not applied: %+v", d)
	}
	if d.Phone != Defaults().Phone {
		t.Errorf("untouched field changed: %q", d.Phone)
	}

	// a fresh repo on the same store sees the saved record
	reloaded := newTestService(t, st)
	got, err := reloaded.Get(ctx)
	if err != nil {
		t.Fatalf("get after reload: %v", err)
	}
	if got.Name != "City Path Lab" {
		t.Errorf("not persisted: %q", got.Name)
	}
}

func TestUpdate_RejectsEmptyRequiredFields(t *testing.T) {
	svc := newTestService(t, store.NewMemStore())
	empty := ""
	if _, err := svc.Update(context.Background(), Update{Name: &empty}); err == nil {
		t.Fatal("expected validation error for empty name")
	}
}

func TestReset_RestoresDefaults(t *testing.T) {
	svc := newTestService(t, store.NewMemStore())
	ctx := context.Background()

	name := "City Path Lab"
	if _, err := svc.Update(ctx, Update{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}
	d, err := svc.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if d != Defaults() {
		t.Errorf("reset left %+v", d)
	}
}
