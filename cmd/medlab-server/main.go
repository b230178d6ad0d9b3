package main

import (
	"context"
	crypto_rand "crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/medlab/medlab/internal/config"
	"github.com/medlab/medlab/internal/domain/billing"
	"github.com/medlab/medlab/internal/domain/catalog"
	"github.com/medlab/medlab/internal/domain/hospital"
	"github.com/medlab/medlab/internal/domain/patient"
	"github.com/medlab/medlab/internal/domain/registration"
	"github.com/medlab/medlab/internal/domain/report"
	"github.com/medlab/medlab/internal/platform/auth"
	"github.com/medlab/medlab/internal/platform/backup"
	"github.com/medlab/medlab/internal/platform/docgen"
	"github.com/medlab/medlab/internal/platform/middleware"
	"github.com/medlab/medlab/internal/platform/seed"
	"github.com/medlab/medlab/internal/platform/store"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medlab-server",
		Short: "Laboratory management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty installation with the starter test catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger("development")
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := context.Background()
			st, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			tests, err := catalog.NewRepo(ctx, st)
			if err != nil {
				return err
			}
			return seed.Run(ctx, tests, logger)
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full dataset to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := context.Background()
			st, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			app, err := buildApp(ctx, st, zerolog.Nop())
			if err != nil {
				return err
			}
			doc, err := app.backupSvc.Export(ctx)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			if err := afero.WriteFile(afero.NewOsFs(), out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Printf("Exported dataset to %s\n", out)
			return nil
		},
	}
	cmd.Flags().String("out", "medlab_data.json", "Output file path")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the full dataset from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			raw, err := afero.ReadFile(afero.NewOsFs(), args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			ctx := context.Background()
			st, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			app, err := buildApp(ctx, st, zerolog.Nop())
			if err != nil {
				return err
			}
			doc, err := app.backupSvc.Import(ctx, raw)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d patients, %d tests, %d reports, %d invoices\n",
				len(doc.Patients), len(doc.Tests), len(doc.Reports), len(doc.Invoices))
			return nil
		},
	}
}

func newLogger(env string) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

// openStore builds the configured bucket driver. The returned closer is a
// no-op for everything except Postgres.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StorageDriver {
	case "file":
		st, err := store.NewFileStore(afero.NewOsFs(), cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil
	case "postgres":
		pool, err := store.NewPGPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		st, err := store.NewPGStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return st, pool.Close, nil
	case "memory":
		return store.NewMemStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// app holds every repository and service, wired once at startup.
type app struct {
	patients patient.Repository
	tests    catalog.Repository
	reports  report.Repository
	invoices billing.Repository
	hospital hospital.Repository

	patientSvc  *patient.Service
	catalogSvc  *catalog.Service
	reportSvc   *report.Service
	billingSvc  *billing.Service
	registerSvc *registration.Service
	hospitalSvc *hospital.Service
	backupSvc   *backup.Service
	docgenSvc   *docgen.Service
}

func buildApp(ctx context.Context, st store.Store, logger zerolog.Logger) (*app, error) {
	patients, err := patient.NewRepo(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("patient repo: %w", err)
	}
	tests, err := catalog.NewRepo(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("catalog repo: %w", err)
	}
	reports, err := report.NewRepo(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("report repo: %w", err)
	}
	invoices, err := billing.NewRepo(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("billing repo: %w", err)
	}
	hosp, err := hospital.NewRepo(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("hospital repo: %w", err)
	}

	return &app{
		patients: patients,
		tests:    tests,
		reports:  reports,
		invoices: invoices,
		hospital: hosp,

		patientSvc:  patient.NewService(patients),
		catalogSvc:  catalog.NewService(tests),
		reportSvc:   report.NewService(reports, tests),
		billingSvc:  billing.NewService(invoices),
		registerSvc: registration.NewService(patients, tests, reports, invoices),
		hospitalSvc: hospital.NewService(hosp),
		backupSvc:   backup.NewService(patients, tests, reports, invoices, hosp, logger),
		docgenSvc:   docgen.NewService(patients, tests, reports, invoices, hosp),
	}, nil
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Env)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open storage")
	}
	defer closeStore()
	logger.Info().Str("driver", cfg.StorageDriver).Msg("storage ready")

	app, err := buildApp(ctx, st, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build application")
	}

	if cfg.SeedOnStart {
		if err := seed.Run(ctx, app.tests, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed catalog")
		}
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		// Dev convenience: tokens do not survive a restart.
		buf := make([]byte, 32)
		if _, err := crypto_rand.Read(buf); err != nil {
			logger.Fatal().Err(err).Msg("failed to generate dev JWT secret")
		}
		secret = []byte(hex.EncodeToString(buf))
		logger.Warn().Msg("JWT_SECRET not set, using a random per-process secret")
	}
	authSvc := auth.NewService(auth.Config{
		Secret:        secret,
		TokenTTL:      time.Duration(cfg.TokenTTLHours) * time.Hour,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Login is the only public API route
	public := e.Group("/api/v1")
	auth.NewHandler(authSvc).RegisterRoutes(public)

	apiV1 := e.Group("/api/v1", authSvc.Middleware())
	patient.NewHandler(app.patientSvc).RegisterRoutes(apiV1)
	catalog.NewHandler(app.catalogSvc).RegisterRoutes(apiV1)
	report.NewHandler(app.reportSvc).RegisterRoutes(apiV1)
	billing.NewHandler(app.billingSvc).RegisterRoutes(apiV1)
	registration.NewHandler(app.registerSvc).RegisterRoutes(apiV1)
	hospital.NewHandler(app.hospitalSvc).RegisterRoutes(apiV1)
	backup.NewHandler(app.backupSvc).RegisterRoutes(apiV1)
	docgen.NewHandler(app.docgenSvc).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
