package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medlab/medlab/internal/config"
	"github.com/medlab/medlab/internal/domain/patient"
	"github.com/medlab/medlab/internal/platform/store"
)

func TestOpenStore_MemoryDriver(t *testing.T) {
	cfg := &config.Config{StorageDriver: "memory"}
	st, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer closeStore()
	if st == nil {
		t.Fatal("nil store")
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := &config.Config{StorageDriver: "tape"}
	if _, _, err := openStore(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestBuildApp_ServicesShareRepositories(t *testing.T) {
	ctx := context.Background()
	app, err := buildApp(ctx, store.NewMemStore(), zerolog.Nop())
	if err != nil {
		t.Fatalf("buildApp: %v", err)
	}

	p := &patient.Patient{Name: "Jane Doe", Age: 34, Gender: patient.GenderFemale, Phone: "1"}
	if err := app.patientSvc.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	// the backup service reads through the same repository
	doc, err := app.backupSvc.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(doc.Patients) != 1 || doc.Patients[0].ID != p.ID {
		t.Errorf("export did not see created patient: %+v", doc.Patients)
	}
}
