package leads

import (
	"encoding/json"
	"net/http"

	"github.com/arivar/backend/internal/documents"
	"github.com/arivar/backend/internal/observability/metrics"
	"github.com/arivar/backend/internal/schema"
	"github.com/arivar/backend/pkg/logging"
)

// Handler handles HTTP requests for lead capture.
type Handler struct {
	store    documents.Store
	registry *schema.Registry
	metrics  *metrics.APIMetrics
	logger   *logging.Logger
}

// NewHandler creates a new leads handler. Both the store and the registry
// may be nil when the service runs without a database; requests then fail
// with a configuration error instead of panicking. metrics may be nil.
func NewHandler(store documents.Store, registry *schema.Registry, m *metrics.APIMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		store:    store,
		registry: registry,
		metrics:  m,
		logger:   logger,
	}
}

// Create handles POST /api/leads requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	def, ok := h.registry.Get(SchemaName)
	if !ok || h.store == nil {
		http.Error(w, "Database not configured", http.StatusInternalServerError)
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Error("failed to decode lead payload", "error", err)
		http.Error(w, "invalid json: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := def.Validate(payload); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	lead, err := FromPayload(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	id, err := h.store.CreateDocument(r.Context(), Kind, lead)
	if err != nil {
		h.logger.Error("failed to persist lead", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveLeadCreated()
	h.logger.Info("lead created", "id", id, "name", lead.Name, "source", lead.Source)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"id":     id,
	})
}
