package handlers

import (
	"log/slog"
	"net/http"

	"taxonomy-browser/internal/breadcrumb"
)

// BreadcrumbRequest is the body of POST /api/breadcrumbs. A missing or null
// breadcrumbs field means navigation has not started.
type BreadcrumbRequest struct {
	Breadcrumbs breadcrumb.Path  `json:"breadcrumbs"`
	Event       breadcrumb.Event `json:"event"`
}

// BreadcrumbResponse is the response of POST /api/breadcrumbs.
type BreadcrumbResponse struct {
	Breadcrumbs breadcrumb.Path `json:"breadcrumbs"`
	Kind        string          `json:"kind"`
}

// BreadcrumbHandler computes the next breadcrumb path for a navigation event.
// It holds no session state; the caller sends its current path every time.
type BreadcrumbHandler struct {
	logger *slog.Logger
}

// NewBreadcrumbHandler creates a new BreadcrumbHandler.
func NewBreadcrumbHandler() *BreadcrumbHandler {
	return &BreadcrumbHandler{
		logger: slog.Default(),
	}
}

// ServeHTTP handles POST /api/breadcrumbs.
func (h *BreadcrumbHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req BreadcrumbRequest
	if err := decodeBody(w, r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind := breadcrumb.Classify(req.Event)
	next := breadcrumb.Next(req.Breadcrumbs, req.Event)
	logger.DebugContext(ctx, "breadcrumb transition", "kind", kind.String(), "from", len(req.Breadcrumbs), "to", len(next))

	writeJSON(ctx, logger, w, http.StatusOK, BreadcrumbResponse{
		Breadcrumbs: next,
		Kind:        kind.String(),
	})
}
