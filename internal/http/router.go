package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taxonomy-browser/internal/handlers"
	"taxonomy-browser/internal/ingest"
	"taxonomy-browser/internal/service"
	"taxonomy-browser/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Browser service.Browser
	Store   storage.NodeStore
	// Tracker reports the last ingestion on the health endpoint. Optional.
	Tracker *ingest.Tracker
	// LargestLimit is the number of largest children shown on the browse page.
	LargestLimit int
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(Metrics)

	// Add CORS middleware
	r.Use(CORS)

	nodesHandler := handlers.NewNodesHandler(deps.Browser)
	largestHandler := handlers.NewLargestHandler(deps.Browser)
	batchHandler := handlers.NewBatchHandler(deps.Browser)
	searchHandler := handlers.NewSearchHandler(deps.Browser)
	breadcrumbHandler := handlers.NewBreadcrumbHandler()
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Tracker)
	pageHandler := handlers.NewPageHandler(deps.Browser, deps.LargestLimit)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/nodes", nodesHandler)
		r.Method(http.MethodGet, "/nodes/largest", largestHandler)
		r.Method(http.MethodPost, "/nodes/batch", batchHandler)
		r.Method(http.MethodGet, "/search", searchHandler)
		r.Method(http.MethodPost, "/breadcrumbs", breadcrumbHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Serve the browse page at root
	r.Method(http.MethodGet, "/", pageHandler)

	return r
}
