package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arivar/backend/internal/api/router"
	appconfig "github.com/arivar/backend/internal/config"
	"github.com/arivar/backend/internal/diagnostics"
	"github.com/arivar/backend/internal/documents"
	"github.com/arivar/backend/internal/leads"
	"github.com/arivar/backend/internal/observability/metrics"
	"github.com/arivar/backend/internal/schema"
	"github.com/arivar/backend/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting arivar backend API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Schema registry is static: every payload schema is registered here.
	registry := schema.NewRegistry()
	registry.Register(leads.SchemaName, leads.SchemaDefinition())

	metricsHandler, apiMetrics := setupAPIMetrics()

	// The database is optional. Without DATABASE_URL the service still serves
	// greetings, diagnostics and the schema catalog; lead intake reports
	// itself as not configured.
	var store documents.Store
	var resolve diagnostics.Resolver

	switch {
	case cfg.UseMemoryStore:
		store = documents.NewInMemoryStore()
		logger.Warn("using in-memory document store; documents will not survive restarts")
	case cfg.DatabaseURL != "":
		if pool := connectPostgresPool(context.Background(), cfg.DatabaseURL, logger); pool != nil {
			store = documents.NewPostgresStore(pool)
		}
		resolve = sqlResolver(cfg, logger)
	default:
		logger.Warn("DATABASE_URL not set; lead persistence disabled")
	}

	// Initialize handlers
	leadsHandler := leads.NewHandler(store, registry, apiMetrics, logger)
	diagnosticsHandler := diagnostics.NewHandler(resolve, logger)
	schemaHandler := schema.NewHandler(registry, logger)

	// Setup router
	routerCfg := &router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		DiagnosticsHandler: diagnosticsHandler,
		SchemaHandler:      schemaHandler,
		Metrics:            apiMetrics,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		LeadsRateLimit:     cfg.LeadsRateLimit,
		LeadsRateBurst:     cfg.LeadsRateBurst,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// setupAPIMetrics registers the API metrics on a dedicated registry and
// returns the exposition handler alongside them.
func setupAPIMetrics() (http.Handler, *metrics.APIMetrics) {
	reg := prometheus.NewRegistry()
	m := metrics.NewAPIMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), m
}

// connectPostgresPool creates the pgx pool backing the document store.
// Connection failures are logged, not fatal: the service degrades to the
// not-configured behavior instead of refusing to start.
func connectPostgresPool(ctx context.Context, url string, logger *logging.Logger) *pgxpool.Pool {
	if url == "" {
		return nil
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		logger.Error("failed to create pgx pool", "error", err)
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Warn("database ping failed; pool kept for later retries", "error", err)
	}
	return pool
}

// sqlResolver lazily opens the database/sql connection used by the
// connectivity probe. The handle is initialized once and shared by all
// requests afterwards.
func sqlResolver(cfg *appconfig.Config, logger *logging.Logger) diagnostics.Resolver {
	var (
		once sync.Once
		db   *sql.DB
	)
	return func(ctx context.Context) (diagnostics.Database, error) {
		once.Do(func() {
			opened, err := sql.Open("postgres", cfg.DatabaseURL)
			if err != nil {
				logger.Error("failed to open diagnostics connection", "error", err)
				return
			}
			db = opened
		})
		if db == nil {
			return nil, nil
		}
		return diagnostics.NewSQLDatabase(db, cfg.DatabaseName), nil
	}
}
