package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxonomy_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures response time by method and route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taxonomy_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// NodesIngested is the node count of the last committed ingestion.
	NodesIngested = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "taxonomy_nodes_ingested",
			Help: "Number of nodes committed by the last successful ingestion",
		},
	)

	// IngestionDuration measures full ingestion runs, labeled by outcome.
	IngestionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taxonomy_ingestion_duration_seconds",
			Help:    "Duration of ingestion runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"outcome"},
	)
)
