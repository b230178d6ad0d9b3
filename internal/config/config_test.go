package config

import "testing"

func devConfig() *Config {
	return &Config{
		Port:          "8000",
		Env:           "development",
		StorageDriver: "file",
		DataDir:       "./data",
		TokenTTLHours: 12,
		AdminEmail:    "admin@medlab.com",
		AdminPassword: "password",
	}
}

func TestValidate_DevDefaults(t *testing.T) {
	if err := devConfig().Validate(); err != nil {
		t.Errorf("development defaults should validate: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := devConfig()
	cfg.StorageDriver = "sqlite"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown storage driver")
	}
}

func TestValidate_PostgresNeedsURL(t *testing.T) {
	cfg := devConfig()
	cfg.StorageDriver = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when DATABASE_URL missing for postgres driver")
	}
	cfg.DatabaseURL = "postgres://localhost/medlab"
	if err := cfg.Validate(); err != nil {
		t.Errorf("postgres driver with URL should validate: %v", err)
	}
}

func TestValidate_FileNeedsDataDir(t *testing.T) {
	cfg := devConfig()
	cfg.DataDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when DATA_DIR missing for file driver")
	}
}

func TestValidate_ProductionHardening(t *testing.T) {
	cfg := devConfig()
	cfg.Env = "production"
	if err := cfg.Validate(); err == nil {
		t.Error("production with default credentials must not validate")
	}
	cfg.JWTSecret = "0123456789abcdef"
	cfg.AdminPassword = "s3cret-rotated"
	if err := cfg.Validate(); err != nil {
		t.Errorf("hardened production config should validate: %v", err)
	}
}

func TestValidate_TokenTTL(t *testing.T) {
	cfg := devConfig()
	cfg.TokenTTLHours = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-positive token TTL")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port == "" {
		t.Error("expected default port")
	}
	if cfg.StorageDriver != "file" {
		t.Errorf("expected default file driver, got %q", cfg.StorageDriver)
	}
	if cfg.AdminEmail != "admin@medlab.com" {
		t.Errorf("expected default admin email, got %q", cfg.AdminEmail)
	}
}
