package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arivar/backend/internal/diagnostics"
	httpmiddleware "github.com/arivar/backend/internal/http/middleware"
	"github.com/arivar/backend/internal/leads"
	"github.com/arivar/backend/internal/observability/metrics"
	"github.com/arivar/backend/internal/schema"
	"github.com/arivar/backend/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	LeadsHandler       *leads.Handler
	DiagnosticsHandler *diagnostics.Handler
	SchemaHandler      *schema.Handler
	Metrics            *metrics.APIMetrics
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Rate limiting for the public lead form; disabled when LeadsRateLimit is 0.
	LeadsRateLimit float64
	LeadsRateBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.Metrics != nil {
		r.Use(httpmiddleware.Metrics(cfg.Metrics))
	}

	// Greeting bodies are pinned by the deployed frontend.
	r.Get("/", greeting("Hello from FastAPI Backend!"))
	r.Get("/api/hello", greeting("Hello from the backend API!"))

	if cfg.DiagnosticsHandler != nil {
		r.Get("/test", cfg.DiagnosticsHandler.Probe)
	}
	if cfg.SchemaHandler != nil {
		r.Get("/schema", cfg.SchemaHandler.Catalog)
	}
	if cfg.LeadsHandler != nil {
		if cfg.LeadsRateLimit > 0 {
			r.With(httpmiddleware.RateLimit(cfg.LeadsRateLimit, cfg.LeadsRateBurst)).
				Post("/api/leads", cfg.LeadsHandler.Create)
		} else {
			r.Post("/api/leads", cfg.LeadsHandler.Create)
		}
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}

func greeting(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
	}
}
