package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medlab/medlab/internal/domain/catalog"
	"github.com/medlab/medlab/internal/platform/store"
)

func TestRun_SeedsEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	repo, err := catalog.NewRepo(ctx, store.NewMemStore())
	if err != nil {
		t.Fatalf("NewRepo: %v", err)
	}
	if err := Run(ctx, repo, zerolog.Nop()); err != nil {
		t.Fatalf("run: %v", err)
	}
	tests, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tests) != 5 {
		t.Fatalf("len = %d, want 5", len(tests))
	}
	if tests[0].Name != "Complete Blood Count (CBC)" || tests[0].Price != 800 {
		t.Errorf("first test wrong: %+v", tests[0])
	}
	if len(tests[1].Parameters) != 4 {
		t.Errorf("lipid profile parameters = %d, want 4", len(tests[1].Parameters))
	}
}

func TestRun_LeavesPopulatedCatalogAlone(t *testing.T) {
	ctx := context.Background()
	repo, err := catalog.NewRepo(ctx, store.NewMemStore())
	if err != nil {
		t.Fatalf("NewRepo: %v", err)
	}
	existing := &catalog.Test{
		ID: "custom", Name: "Custom Panel", Category: "Other", Price: 100,
		Parameters: []catalog.Parameter{{Name: "X", NormalRange: "1-2"}},
	}
	if err := repo.Create(ctx, existing); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := Run(ctx, repo, zerolog.Nop()); err != nil {
		t.Fatalf("run: %v", err)
	}
	tests, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tests) != 1 {
		t.Fatalf("len = %d, want 1", len(tests))
	}
}

func TestRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo, err := catalog.NewRepo(ctx, store.NewMemStore())
	if err != nil {
		t.Fatalf("NewRepo: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := Run(ctx, repo, zerolog.Nop()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	tests, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tests) != 5 {
		t.Fatalf("len = %d, want 5", len(tests))
	}
}
