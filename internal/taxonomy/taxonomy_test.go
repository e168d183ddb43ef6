package taxonomy

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multiParent is X from the A/B fixture: reached through A and through B.
func multiParent() *Node {
	return &Node{
		ID:    "X",
		Label: "x",
		Chains: []Chain{
			{AncestorID: "A", Children: []string{"x1", "x2", "x3"}, Size: 3},
			{AncestorID: "B", Children: []string{"x4"}, Size: 1},
		},
	}
}

func TestNode_Views(t *testing.T) {
	tests := []struct {
		name            string
		node            Node
		wantRoot        bool
		wantAncestors   []string
		wantDescendants [][]string
		wantSizes       []int
	}{
		{
			name:            "root",
			node:            Node{ID: "R", Chains: []Chain{{Children: []string{"A", "B"}, Size: 2}}},
			wantRoot:        true,
			wantAncestors:   []string{},
			wantDescendants: [][]string{{"A", "B"}},
			wantSizes:       []int{2},
		},
		{
			name:            "node without chains",
			node:            Node{ID: "R"},
			wantRoot:        true,
			wantAncestors:   []string{},
			wantDescendants: [][]string{{}},
			wantSizes:       []int{0},
		},
		{
			name:            "multi parent leaf",
			node:            Node{ID: "X", Chains: []Chain{{AncestorID: "A"}, {AncestorID: "B"}}},
			wantAncestors:   []string{"A", "B"},
			wantDescendants: [][]string{{}, {}},
			wantSizes:       []int{0, 0},
		},
		{
			name:            "top level and nested",
			node:            Node{ID: "T", Chains: []Chain{{Children: []string{"c"}, Size: 1}, {AncestorID: "P"}}},
			wantAncestors:   []string{"", "P"},
			wantDescendants: [][]string{{"c"}, {}},
			wantSizes:       []int{1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantRoot, tt.node.IsRoot())
			assert.Equal(t, tt.wantAncestors, tt.node.Ancestors())
			assert.Equal(t, tt.wantDescendants, tt.node.Descendants())
			assert.Equal(t, tt.wantSizes, tt.node.Sizes())

			chains := len(tt.node.Descendants())
			assert.Equal(t, chains, len(tt.node.Sizes()))
			assert.Equal(t, chains, max(1, len(tt.node.Ancestors())))
		})
	}
}

func TestNode_ChainIndex(t *testing.T) {
	x := multiParent()

	tests := []struct {
		name     string
		ancestor string
		wantIdx  int
		wantOK   bool
	}{
		{name: "second parent", ancestor: "B", wantIdx: 1, wantOK: true},
		{name: "first parent", ancestor: "A", wantIdx: 0, wantOK: true},
		{name: "no ancestor", ancestor: "", wantIdx: 0, wantOK: false},
		{name: "unknown ancestor", ancestor: "Q", wantIdx: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := x.ChainIndex(tt.ancestor)
			assert.Equal(t, tt.wantIdx, idx)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestNode_ResolveChain(t *testing.T) {
	x := multiParent()

	idx, err := x.ResolveChain("B")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = x.ResolveChain("")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = x.ResolveChain("nope")
	assert.True(t, errors.Is(err, ErrUnknownAncestor))
	assert.Equal(t, 0, idx)
}

func TestNode_DescendantsOf(t *testing.T) {
	x := multiParent()
	assert.Equal(t, []string{"x4"}, x.DescendantsOf(1))
	assert.Equal(t, []string{}, x.DescendantsOf(2))
	assert.Equal(t, []string{}, x.DescendantsOf(-1))
	assert.Equal(t, []string{}, (&Node{ID: "empty"}).DescendantsOf(0))
	assert.Equal(t, 2, x.ChainCount())
}

func TestWindowedChildren(t *testing.T) {
	x := multiParent()

	tests := []struct {
		name     string
		ancestor string
		start    int
		stop     int
		want     []string
	}{
		{name: "first window", ancestor: "A", start: 0, stop: 1, want: []string{"x1", "x2"}},
		{name: "inclusive stop", ancestor: "A", start: 1, stop: 2, want: []string{"x2", "x3"}},
		{name: "stop clamped", ancestor: "A", start: 2, stop: 50, want: []string{"x3"}},
		{name: "start past end", ancestor: "A", start: 3, stop: 10, want: []string{}},
		{name: "inverted window", ancestor: "A", start: 2, stop: 1, want: []string{}},
		{name: "negative start", ancestor: "A", start: -4, stop: 0, want: []string{"x1"}},
		{name: "second chain", ancestor: "B", start: 0, stop: 10, want: []string{"x4"}},
		{name: "unknown ancestor uses default chain", ancestor: "Q", start: 0, stop: 0, want: []string{"x1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WindowedChildren(x, tt.ancestor, tt.start, tt.stop))
		})
	}
}

func TestWindowedChildren_RoundTripAndIdempotent(t *testing.T) {
	x := multiParent()
	for _, ancestor := range []string{"A", "B"} {
		idx, ok := x.ChainIndex(ancestor)
		require.True(t, ok)

		full := WindowedChildren(x, ancestor, 0, x.Sizes()[idx]-1)
		assert.Equal(t, x.DescendantsOf(idx), full)
		assert.Equal(t, full, WindowedChildren(x, ancestor, 0, x.Sizes()[idx]-1))
	}

	window := WindowedChildren(x, "A", 0, 0)
	window[0] = "mutated"
	assert.Equal(t, "x1", x.Chains[0].Children[0])
}

func TestLargestQuery(t *testing.T) {
	x := multiParent()

	q := LargestQuery(x, "A", 2)
	assert.Equal(t, []string{"x1", "x2", "x3"}, q.IDs, "every child of the chain is a candidate")
	assert.Equal(t, FieldSize, q.Field)
	assert.Equal(t, 0, q.Index)
	assert.Equal(t, 2, q.Limit)

	q = LargestQuery(x, "B", 3)
	assert.Equal(t, []string{"x4"}, q.IDs)
	assert.Equal(t, 1, q.Index)
}

func TestRank_UsesParentChainIndex(t *testing.T) {
	// Each candidate has a huge chain 0 and a modest chain 1. Ranking at
	// index 1 must ignore chain 0 completely.
	candidates := []Node{
		{ID: "c1", Chains: []Chain{{AncestorID: "Z", Size: 900}, {AncestorID: "P", Size: 1}}},
		{ID: "c2", Chains: []Chain{{AncestorID: "Z", Size: 5}, {AncestorID: "P", Size: 7}}},
		{ID: "c3", Chains: []Chain{{AncestorID: "Z", Size: 500}}},
		{ID: "c4", Chains: []Chain{{AncestorID: "Z", Size: 1}, {AncestorID: "P", Size: 4}}},
		{ID: "c5", Chains: []Chain{{AncestorID: "Z", Size: 2}, {AncestorID: "P", Size: 4}}},
	}

	ranked := Rank(candidates, RankQuery{Field: FieldSize, Index: 1, Limit: 3})
	ids := make([]string, len(ranked))
	for i, n := range ranked {
		ids[i] = n.ID
	}
	assert.Equal(t, []string{"c2", "c4", "c5"}, ids)

	all := Rank(candidates, RankQuery{Field: FieldSize, Index: 1})
	assert.Len(t, all, 5)
	assert.Equal(t, "c3", all[4].ID, "candidate without the chain ranks last")

	byDefault := Rank(candidates, RankQuery{Field: FieldSize, Index: 0, Limit: 1})
	assert.Equal(t, "c1", byDefault[0].ID)
}

func TestNode_JSON(t *testing.T) {
	x := multiParent()
	data, err := json.Marshal(x)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "X",
		"label": "x",
		"description": "",
		"ancestors": ["A", "B"],
		"descendants": [["x1", "x2", "x3"], ["x4"]],
		"size": [3, 1]
	}`, string(data))

	var decoded Node
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *x, decoded)
}

func TestNode_UnmarshalJSON_Sizes(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantSizes []int
		wantErr   bool
	}{
		{
			name:      "derived from descendants",
			input:     `{"id":"R","ancestors":[],"descendants":[["a","b"]]}`,
			wantSizes: []int{2},
		},
		{
			name:      "taken verbatim",
			input:     `{"id":"R","ancestors":[],"descendants":[["a","b"]],"size":[40]}`,
			wantSizes: []int{40},
		},
		{
			name:      "root without descendants",
			input:     `{"id":"R","ancestors":[],"descendants":[]}`,
			wantSizes: []int{0},
		},
		{
			name:    "size count mismatch",
			input:   `{"id":"X","ancestors":["A","B"],"descendants":[[],[]],"size":[1]}`,
			wantErr: true,
		},
		{
			name:    "missing id",
			input:   `{"label":"nameless"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Node
			err := json.Unmarshal([]byte(tt.input), &n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSizes, n.Sizes())
		})
	}
}
