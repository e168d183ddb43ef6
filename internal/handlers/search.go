package handlers

import (
	"log/slog"
	"net/http"

	"taxonomy-browser/internal/service"
	"taxonomy-browser/internal/taxonomy"
)

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Elements  []taxonomy.Node `json:"elements"`
	Ancestors []taxonomy.Node `json:"ancestors"`
}

// SearchHandler serves text search over labels and descriptions.
type SearchHandler struct {
	browser service.Browser
	logger  *slog.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(browser service.Browser) *SearchHandler {
	return &SearchHandler{
		browser: browser,
		logger:  slog.Default(),
	}
}

// ServeHTTP handles GET /api/search?query=&limit=.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	resp, err := h.browser.Search(ctx, service.SearchRequest{
		Query: r.URL.Query().Get("query"),
		Limit: limit,
	})
	if err != nil {
		handleServiceError(ctx, logger, w, err, "Failed to search")
		return
	}

	writeJSON(ctx, logger, w, http.StatusOK, SearchResponse{
		Elements:  resp.Elements,
		Ancestors: resp.Ancestors,
	})
}
