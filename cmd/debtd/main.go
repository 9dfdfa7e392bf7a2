package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/furiksayram-commits/debt-tracker/internal/adapters/storage/jsonbin"
	memstore "github.com/furiksayram-commits/debt-tracker/internal/adapters/storage/memory"
	pgstore "github.com/furiksayram-commits/debt-tracker/internal/adapters/storage/pgsql"
	"github.com/furiksayram-commits/debt-tracker/internal/core/ports"
	"github.com/furiksayram-commits/debt-tracker/internal/core/services"
	"github.com/furiksayram-commits/debt-tracker/internal/handlers"
	"github.com/furiksayram-commits/debt-tracker/internal/middleware"
	"github.com/furiksayram-commits/debt-tracker/internal/platform/config"
	"github.com/furiksayram-commits/debt-tracker/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"
)

// @title Debt Tracker API
// @version 1.0
// @description Single-tenant debt ledger: debts, payments, running totals.

// @host localhost:3000
// @BasePath /api
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Amounts go over the wire as JSON numbers, matching the stored document.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, storeName, cleanup, err := buildStore(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	// First read is fail-open: an unreachable store at startup means "no data
	// yet", not a fatal error. Mutations reload strictly and will surface
	// storage failures per request.
	debtors, err := store.Load(context.Background())
	if err != nil {
		logger.Warn("Initial ledger load failed, starting with empty collection", slog.String("error", err.Error()))
	} else {
		logger.Info("Ledger loaded", slog.Int("debtors", len(debtors)), slog.String("store", storeName))
	}

	debtorService := services.NewDebtorService(store)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	limiterInstance := limiter.New(limitermem.NewStore(), rate)

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.Default(),
		middleware.RateLimit(limiterInstance),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, debtorService, store, storeName)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", storeName))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildStore constructs the configured DebtorStore. The returned cleanup
// releases any pooled resources.
func buildStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.DebtorStore, string, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, "", nil, err
		}
		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			database.ClosePgxPool(pool)
			return nil, "", nil, err
		}
		return pgstore.NewStore(pool), "postgres", func() { database.ClosePgxPool(pool) }, nil

	case config.BackendMemory:
		return memstore.NewStore(), "memory", func() {}, nil

	default:
		store := jsonbin.NewStore(jsonbin.Config{
			BaseURL: cfg.JSONBinBaseURL,
			BinID:   cfg.JSONBinBinID,
			APIKey:  cfg.JSONBinAPIKey,
			Timeout: cfg.JSONBinTimeout,
		})
		return store, "jsonbin:" + cfg.JSONBinBinID, func() {}, nil
	}
}

// runMigrations applies the document-store schema before the pool serves
// traffic. Uses a temporary database/sql connection via the pgx stdlib
// driver so golang-migrate can drive it.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
