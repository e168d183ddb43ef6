package ingest

import (
	"sync/atomic"
	"time"

	"taxonomy-browser/internal/taxonomy"
)

// Stats describes one ingestion run.
type Stats struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id"`
	// Source describes where the document came from.
	Source string `json:"source"`
	// Nodes is the number of unique records.
	Nodes int `json:"nodes"`
	// Roots is the number of records without ancestors.
	Roots int `json:"roots"`
	// MultiParent is the number of records reachable through more than one parent.
	MultiParent int `json:"multi_parent"`
	// MaxChains is the largest chain count of any record.
	MaxChains int `json:"max_chains"`
	// Edges is the sum of all chain sizes.
	Edges int `json:"edges"`
	// Duration is the wall time from fetch to commit.
	Duration time.Duration `json:"duration"`
	// CommittedAt is when the records were committed.
	CommittedAt time.Time `json:"committed_at"`
}

// ComputeStats summarises a record set.
func ComputeStats(nodes []taxonomy.Node) *Stats {
	stats := &Stats{Nodes: len(nodes)}
	for i := range nodes {
		n := &nodes[i]
		if n.IsRoot() {
			stats.Roots++
		}
		chains := n.ChainCount()
		if chains > 1 {
			stats.MultiParent++
		}
		if chains > stats.MaxChains {
			stats.MaxChains = chains
		}
		for _, c := range n.Chains {
			stats.Edges += c.Size
		}
	}
	return stats
}

// Tracker remembers the most recent committed run. It is safe for
// concurrent use.
type Tracker struct {
	last atomic.Pointer[Stats]
}

// Record stores stats as the latest run.
func (t *Tracker) Record(stats *Stats) {
	t.last.Store(stats)
}

// Last returns the latest committed run, or nil before the first one.
func (t *Tracker) Last() *Stats {
	return t.last.Load()
}
