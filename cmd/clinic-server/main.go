package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healcare/clinic/internal/config"
	"github.com/healcare/clinic/internal/domain/billing"
	"github.com/healcare/clinic/internal/domain/dashboard"
	"github.com/healcare/clinic/internal/domain/inventory"
	"github.com/healcare/clinic/internal/domain/profiles"
	"github.com/healcare/clinic/internal/domain/registry"
	"github.com/healcare/clinic/internal/domain/scheduling"
	"github.com/healcare/clinic/internal/domain/settings"
	"github.com/healcare/clinic/internal/platform/auth"
	"github.com/healcare/clinic/internal/platform/middleware"
	"github.com/healcare/clinic/internal/platform/state"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "HealCare clinic management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres document store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Create the slot table if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for migrate")
			}

			ctx := context.Background()
			pool, err := state.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			store := state.NewPGStore(pool)
			if err := store.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println("Schema is up to date.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the stored slots and their last write times",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for migrate")
			}

			ctx := context.Background()
			pool, err := state.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := state.NewPGStore(pool).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get slot status: %w", err)
			}

			fmt.Printf("%-20s %-10s %s\n", "SLOT", "BYTES", "UPDATED AT")
			fmt.Println("-------------------- ---------- --------------------")
			for _, s := range statuses {
				fmt.Printf("%-20s %-10d %s\n", s.Key, s.Bytes, s.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	})

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample data if the patient register is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := context.Background()
			store, cleanup, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := state.Open(ctx, store)
			if err != nil {
				return err
			}
			if err := st.SeedIfEmpty(ctx); err != nil {
				return err
			}
			fmt.Println("Seed complete.")
			return nil
		},
	}
}

// openStore picks the slot store backend from the configured driver.
// The returned cleanup closes the pool for postgres and is a no-op
// for the file backend.
func openStore(ctx context.Context, cfg *config.Config) (state.SlotStore, func(), error) {
	switch cfg.StorageDriver {
	case "postgres":
		pool, err := state.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		store := state.NewPGStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ensuring schema: %w", err)
		}
		return store, pool.Close, nil
	default:
		store, err := state.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening data dir: %w", err)
		}
		return store, func() {}, nil
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Storage
	ctx := context.Background()
	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open storage")
	}
	defer cleanup()
	logger.Info().Str("driver", cfg.StorageDriver).Msg("storage ready")

	st, err := state.Open(ctx, store)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load clinic state")
	}
	if err := st.SeedIfEmpty(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed sample data")
	}

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
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Login stays public; everything else under /api/v1 requires a
	// session token outside development.
	secret := []byte(cfg.AuthSecret)
	if len(secret) == 0 {
		secret = []byte("dev-secret")
	}
	authHandler := auth.NewHandler(secret)
	authHandler.RegisterRoutes(e)

	apiV1 := e.Group("/api/v1")
	if cfg.IsDev() {
		apiV1.Use(auth.DevAuthMiddleware())
	} else {
		apiV1.Use(auth.Middleware(secret))
	}

	// Domain handlers
	registryHandler := registry.NewHandler(registry.NewService(st))
	registryHandler.RegisterRoutes(apiV1)

	schedulingHandler := scheduling.NewHandler(scheduling.NewService(st))
	schedulingHandler.RegisterRoutes(apiV1)

	dashboardHandler := dashboard.NewHandler(dashboard.NewService(st))
	dashboardHandler.RegisterRoutes(apiV1)

	billingHandler := billing.NewHandler(billing.NewService(st))
	billingHandler.RegisterRoutes(apiV1)

	inventoryHandler := inventory.NewHandler(inventory.NewService(st))
	inventoryHandler.RegisterRoutes(apiV1)

	settingsHandler := settings.NewHandler(settings.NewService(st))
	settingsHandler.RegisterRoutes(apiV1)

	profilesHandler := profiles.NewHandler(profiles.NewService(st))
	profilesHandler.RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
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
