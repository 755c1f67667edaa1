package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arivar/backend/internal/diagnostics"
	"github.com/arivar/backend/internal/documents"
	"github.com/arivar/backend/internal/leads"
	"github.com/arivar/backend/internal/observability/metrics"
	"github.com/arivar/backend/internal/schema"
	"github.com/arivar/backend/pkg/logging"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.Default()
	store := documents.NewInMemoryStore()

	registry := schema.NewRegistry()
	registry.Register(leads.SchemaName, leads.SchemaDefinition())

	reg := prometheus.NewRegistry()
	apiMetrics := metrics.NewAPIMetrics(reg)

	resolve := func(context.Context) (diagnostics.Database, error) { return nil, nil }

	cfg := &Config{
		Logger:             logger,
		LeadsHandler:       leads.NewHandler(store, registry, apiMetrics, logger),
		DiagnosticsHandler: diagnostics.NewHandler(resolve, logger),
		SchemaHandler:      schema.NewHandler(registry, logger),
		Metrics:            apiMetrics,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}

	return New(cfg)
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGreetingEndpoints(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		path    string
		message string
	}{
		{"/", "Hello from FastAPI Backend!"},
		{"/api/hello", "Hello from the backend API!"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			// The body must be stable across calls.
			for i := 0; i < 2; i++ {
				rr := get(t, router, tt.path)
				if rr.Code != http.StatusOK {
					t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
				}
				var resp map[string]string
				if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode greeting: %v", err)
				}
				if resp["message"] != tt.message {
					t.Errorf("expected %q, got %q", tt.message, resp["message"])
				}
			}
		})
	}
}

func TestDiagnosticsRoute(t *testing.T) {
	router := newTestRouter(t)

	rr := get(t, router, "/test")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var report diagnostics.Report
	if err := json.NewDecoder(rr.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Backend != "Running" {
		t.Errorf("expected running backend, got %q", report.Backend)
	}
	if report.Database != "Available but not initialized" {
		t.Errorf("unexpected database status %q", report.Database)
	}
}

func TestSchemaRoute(t *testing.T) {
	router := newTestRouter(t)

	rr := get(t, router, "/schema")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode catalog: %v", err)
	}
	if _, ok := resp["Lead"]; !ok {
		t.Errorf("expected Lead schema in catalog, got %v", resp)
	}
}

func TestLeadSubmissionRoute(t *testing.T) {
	router := newTestRouter(t)

	body := `{"name":"Jane Smith","email":"jane@example.com","message":"Demo request"}`
	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "ok" || resp["id"] == "" {
		t.Errorf("unexpected response %v", resp)
	}
}

func TestLeadSubmissionRouteValidation(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(`{"email":"x@example.com"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	router := newTestRouter(t)

	// Serve one request first so the counters exist.
	get(t, router, "/api/hello")

	rr := get(t, router, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "arivar_http_requests_total") {
		t.Errorf("expected request counter to be exported")
	}
}
