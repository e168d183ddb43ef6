package handlers

import (
	"log/slog"
	"net/http"

	"taxonomy-browser/internal/service"
	"taxonomy-browser/internal/taxonomy"
)

// ElementResponse is the body of GET /api/nodes.
type ElementResponse struct {
	Ancestor    string          `json:"ancestor"`
	Element     taxonomy.Node   `json:"element"`
	Descendants []taxonomy.Node `json:"descendants"`
	Root        string          `json:"root,omitempty"`
}

// LargestResponse is the body of GET /api/nodes/largest.
type LargestResponse struct {
	Largest []taxonomy.Node `json:"largest"`
}

// BatchRequest is the body of POST /api/nodes/batch.
type BatchRequest struct {
	IDs []string `json:"ids"`
}

// BatchResponse is the response of POST /api/nodes/batch.
type BatchResponse struct {
	Descendants []taxonomy.Node `json:"descendants"`
}

// NodesHandler serves a node with a window of its children.
type NodesHandler struct {
	browser service.Browser
	logger  *slog.Logger
}

// NewNodesHandler creates a new NodesHandler.
func NewNodesHandler(browser service.Browser) *NodesHandler {
	return &NodesHandler{
		browser: browser,
		logger:  slog.Default(),
	}
}

// ServeHTTP handles GET /api/nodes?id=&ancestor=&start=&limit=.
// Without id the root is returned together with its full child list.
func (h *NodesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	start, err := queryInt(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	resp, err := h.browser.Element(ctx, service.ElementRequest{
		ID:         q.Get("id"),
		AncestorID: q.Get("ancestor"),
		Start:      start,
		Limit:      limit,
	})
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to load element")
		return
	}

	writeJSON(ctx, logger, w, http.StatusOK, ElementResponse{
		Ancestor:    resp.Ancestor,
		Element:     resp.Element,
		Descendants: resp.Descendants,
		Root:        resp.Root,
	})
}

// LargestHandler serves the largest children of a node.
type LargestHandler struct {
	browser service.Browser
	logger  *slog.Logger
}

// NewLargestHandler creates a new LargestHandler.
func NewLargestHandler(browser service.Browser) *LargestHandler {
	return &LargestHandler{
		browser: browser,
		logger:  slog.Default(),
	}
}

// ServeHTTP handles GET /api/nodes/largest?id=&ancestor=&limit=.
func (h *LargestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	resp, err := h.browser.Largest(ctx, service.LargestRequest{
		ID:         q.Get("id"),
		AncestorID: q.Get("ancestor"),
		Limit:      limit,
	})
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to load largest children")
		return
	}

	writeJSON(ctx, logger, w, http.StatusOK, LargestResponse{Largest: resp.Largest})
}

// BatchHandler serves records by id, used to load further rows of a list.
type BatchHandler struct {
	browser service.Browser
	logger  *slog.Logger
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(browser service.Browser) *BatchHandler {
	return &BatchHandler{
		browser: browser,
		logger:  slog.Default(),
	}
}

// ServeHTTP handles POST /api/nodes/batch.
func (h *BatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx, h.logger)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req BatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.browser.Children(ctx, service.ChildrenRequest{IDs: req.IDs})
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to load children")
		return
	}

	writeJSON(ctx, logger, w, http.StatusOK, BatchResponse{Descendants: resp.Descendants})
}
