package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"taxonomy-browser/internal/contextutil"
	"taxonomy-browser/internal/metrics"
	"taxonomy-browser/internal/storage"
	"taxonomy-browser/internal/taxonomy"
)

// Format selects how a source document is turned into records.
type Format string

const (
	// FormatXML is a nested structure document; sizes are derived by flattening.
	FormatXML Format = "xml"
	// FormatRecords is a JSON-lines record dump; sizes are taken verbatim.
	FormatRecords Format = "records"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatXML, FormatRecords:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown document format %q", s)
	}
}

// Pipeline fetches the structure document, flattens it and commits the
// records to the store. A run either commits the full record set or nothing.
type Pipeline struct {
	source  Source
	store   storage.NodeStore
	format  Format
	tracker *Tracker
	logger  *slog.Logger
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(source Source, store storage.NodeStore, format Format) *Pipeline {
	if format == "" {
		format = FormatXML
	}
	return &Pipeline{
		source: source,
		store:  store,
		format: format,
		logger: slog.Default(),
	}
}

// WithLogger sets the logger used when the context carries none.
func (p *Pipeline) WithLogger(logger *slog.Logger) *Pipeline {
	p.logger = logger
	return p
}

// WithTracker records every committed run into tracker.
func (p *Pipeline) WithTracker(tracker *Tracker) *Pipeline {
	p.tracker = tracker
	return p
}

// getLogger extracts logger from context or returns the pipeline logger.
func (p *Pipeline) getLogger(ctx context.Context) *slog.Logger {
	if ctx.Value(contextutil.LoggerKey()) != nil {
		return contextutil.LoggerFromContext(ctx)
	}
	return p.logger
}

// Load fetches and decodes the document into records without committing them.
func (p *Pipeline) Load(ctx context.Context) ([]taxonomy.Node, error) {
	body, err := p.source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = body.Close()
	}()

	return decode(body, p.format)
}

// Run performs one full ingestion and returns its statistics.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	runID := uuid.New().String()
	// Sources log retries through ctx, so they carry the run id too.
	ctx, logger := contextutil.WithAttrs(contextutil.WithLogger(ctx, p.getLogger(ctx)),
		"run_id", runID, "source", p.source.String())
	start := time.Now()

	logger.InfoContext(ctx, "ingestion started", "format", p.format)

	nodes, err := p.Load(ctx)
	if err != nil {
		metrics.IngestionDuration.WithLabelValues("failed").Observe(time.Since(start).Seconds())
		logger.ErrorContext(ctx, "ingestion aborted before commit", "error", err)
		return nil, err
	}

	if err := p.store.InsertAll(ctx, nodes); err != nil {
		metrics.IngestionDuration.WithLabelValues("failed").Observe(time.Since(start).Seconds())
		logger.ErrorContext(ctx, "failed to commit records", "nodes", len(nodes), "error", err)
		return nil, fmt.Errorf("failed to commit records: %w", err)
	}

	stats := ComputeStats(nodes)
	stats.RunID = runID
	stats.Source = p.source.String()
	stats.Duration = time.Since(start)
	stats.CommittedAt = time.Now().UTC()

	metrics.IngestionDuration.WithLabelValues("committed").Observe(stats.Duration.Seconds())
	metrics.NodesIngested.Set(float64(stats.Nodes))
	if p.tracker != nil {
		p.tracker.Record(stats)
	}

	logger.InfoContext(ctx, "ingestion committed",
		"nodes", stats.Nodes,
		"roots", stats.Roots,
		"multi_parent", stats.MultiParent,
		"max_chains", stats.MaxChains,
		"duration_ms", stats.Duration.Milliseconds(),
	)
	return stats, nil
}

func decode(r io.Reader, format Format) ([]taxonomy.Node, error) {
	switch format {
	case FormatRecords:
		return DecodeRecords(r)
	case FormatXML:
		roots, err := DecodeXML(r)
		if err != nil {
			return nil, err
		}
		return Flatten(roots)
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
}
