package taxonomy

import "sort"

// RankField names a per-chain numeric field a store can rank by.
type RankField string

// FieldSize ranks candidates by their per-chain child count.
const FieldSize RankField = "size"

// RankQuery describes a top-N ranking the store has to execute.
// Candidates are ranked by Field at chain Index, descending.
type RankQuery struct {
	IDs   []string
	Field RankField
	Index int
	Limit int
}

// WindowedChildren returns the children of the chain selected by ancestorID
// between start and stop, both inclusive. A window that starts past the end,
// or whose stop precedes its start, yields an empty slice. The returned slice
// is a copy and never aliases the node.
func WindowedChildren(n *Node, ancestorID string, start, stop int) []string {
	idx, _ := n.ResolveChain(ancestorID)
	children := n.DescendantsOf(idx)

	if start < 0 {
		start = 0
	}
	if start >= len(children) || stop < start {
		return []string{}
	}
	if stop >= len(children) {
		stop = len(children) - 1
	}

	window := make([]string, stop-start+1)
	copy(window, children[start:stop+1])
	return window
}

// LargestQuery builds the ranking query for the largest children of n when
// entered through ancestorID. All children of the resolved chain are
// candidates, and they are ranked by their own size at the parent's chain
// index.
func LargestQuery(n *Node, ancestorID string, limit int) RankQuery {
	idx, _ := n.ResolveChain(ancestorID)
	children := n.DescendantsOf(idx)

	ids := make([]string, len(children))
	copy(ids, children)

	return RankQuery{
		IDs:   ids,
		Field: FieldSize,
		Index: idx,
		Limit: limit,
	}
}

// Rank orders candidates for q in memory: by size at q.Index descending,
// candidates lacking that chain last, ties kept in candidate order. At most
// q.Limit nodes are returned when q.Limit is positive.
func Rank(candidates []Node, q RankQuery) []Node {
	ranked := make([]Node, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		si, oki := ranked[i].SizeAt(q.Index)
		sj, okj := ranked[j].SizeAt(q.Index)
		if oki != okj {
			return oki
		}
		return si > sj
	})

	if q.Limit > 0 && len(ranked) > q.Limit {
		ranked = ranked[:q.Limit]
	}
	return ranked
}
