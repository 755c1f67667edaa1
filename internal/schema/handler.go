package schema

import (
	"encoding/json"
	"net/http"

	"github.com/arivar/backend/pkg/logging"
)

// Handler exposes the schema catalog over HTTP.
type Handler struct {
	registry *Registry
	logger   *logging.Logger
}

// NewHandler creates a new schema catalog handler.
func NewHandler(registry *Registry, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{registry: registry, logger: logger}
}

// Catalog handles GET /schema. It never fails visibly: with no registry
// wired the response is an empty mapping.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.registry.Describe()); err != nil {
		h.logger.Error("failed to encode schema catalog", "error", err)
	}
}
