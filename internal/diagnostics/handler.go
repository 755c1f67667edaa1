package diagnostics

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/arivar/backend/pkg/logging"
)

const (
	// Collections listed in a report are capped to keep the payload small.
	maxCollections = 10
	// Error details are truncated so driver errors cannot leak large dumps.
	maxErrorDetail = 50
)

// Handler answers the database connectivity probe.
type Handler struct {
	resolve Resolver
	logger  *logging.Logger
}

// NewHandler creates a prober. resolve may be nil when no database layer
// is wired at all; the probe then reports the module as missing.
func NewHandler(resolve Resolver, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{resolve: resolve, logger: logger}
}

// Probe handles GET /test. Every branch produces a 200 with a full report;
// database failures are downgraded to status strings.
func (h *Handler) Probe(w http.ResponseWriter, r *http.Request) {
	report := h.buildReport(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(report)
}

func (h *Handler) buildReport(ctx context.Context) Report {
	report := Report{
		Backend:          "Running",
		Database:         databaseNotAvailable,
		ConnectionStatus: StatusNotConnected,
		Collections:      []string{},
	}

	if h.resolve == nil {
		report.Database = databaseModuleMissing
	} else if db, err := h.resolve(ctx); err != nil {
		report.Database = "Error: " + truncate(err.Error(), maxErrorDetail)
	} else if db == nil {
		report.Database = databaseUninitialized
	} else {
		report.Database = databaseAvailable
		report.ConnectionStatus = StatusConnected

		name := db.Name()
		if name == "" {
			name = "connected"
		}
		h.logger.Debug("database handle resolved", "name", name)

		if collections, err := db.ListCollections(ctx); err != nil {
			report.Database = "Connected but Error: " + truncate(err.Error(), maxErrorDetail)
		} else {
			if len(collections) > maxCollections {
				collections = collections[:maxCollections]
			}
			if collections == nil {
				collections = []string{}
			}
			report.Collections = collections
			report.Database = databaseWorking
		}
	}

	// Environment flags are reported unconditionally, whatever happened above.
	report.DatabaseURL = envFlag("DATABASE_URL")
	report.DatabaseName = envFlag("DATABASE_NAME")

	return report
}

func envFlag(key string) EnvFlag {
	if os.Getenv(key) != "" {
		return EnvSet
	}
	return EnvNotSet
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
