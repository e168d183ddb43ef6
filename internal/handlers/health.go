package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"taxonomy-browser/internal/ingest"
	"taxonomy-browser/internal/storage"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	store              storage.NodeStore
	tracker            *ingest.Tracker
	healthCheckTimeout time.Duration
	logger             *slog.Logger
}

// NewHealthHandler creates a new HealthHandler. tracker may be nil.
func NewHealthHandler(store storage.NodeStore, tracker *ingest.Tracker) *HealthHandler {
	return &HealthHandler{
		store:              store,
		tracker:            tracker,
		healthCheckTimeout: 5 * time.Second,
		logger:             slog.Default(),
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// Number of stored nodes
	Nodes int `json:"nodes"`

	// Last committed ingestion in this process, if any
	LastIngestion *ingest.Stats `json:"last_ingestion,omitempty"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles GET /api/health.
// Returns 200 OK when the store is reachable and holds a dataset,
// 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Create context with timeout for health checks
	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	count, err := h.store.Count(checkCtx)
	switch {
	case err != nil:
		logger.WarnContext(ctx, "record store health check failed", "error", err)
		checks["store"] = "error"
		issues = append(issues, "store_unavailable")
	case count == 0:
		checks["store"] = "empty"
		issues = append(issues, "no_dataset")
	default:
		checks["store"] = "ok"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Nodes:     count,
		Issues:    issues,
	}
	if h.tracker != nil {
		response.LastIngestion = h.tracker.Last()
	}

	writeJSON(ctx, logger, w, httpStatus, response)
}
