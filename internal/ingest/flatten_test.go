package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxonomy-browser/internal/doctree"
	"taxonomy-browser/internal/taxonomy"
)

func el(id string, children ...*doctree.Element) *doctree.Element {
	return &doctree.Element{ID: id, Label: "label " + id, Description: "gloss " + id, Children: children}
}

func byID(t *testing.T, nodes []taxonomy.Node, id string) taxonomy.Node {
	t.Helper()
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
	}
	t.Fatalf("node %s not found", id)
	return taxonomy.Node{}
}

func TestFlatten_MultiParentChains(t *testing.T) {
	doc := []*doctree.Element{
		el("root",
			el("A", el("X"), el("Y")),
			el("B", el("X")),
		),
	}

	nodes, err := Flatten(doc)
	require.NoError(t, err)

	var ids []string
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"root", "A", "X", "Y", "B"}, ids)

	x := byID(t, nodes, "X")
	assert.Equal(t, []string{"A", "B"}, x.Ancestors())
	assert.Equal(t, [][]string{{}, {}}, x.Descendants())
	assert.Equal(t, []int{0, 0}, x.Sizes())

	a := byID(t, nodes, "A")
	assert.Equal(t, []string{"X", "Y"}, a.Descendants()[0])
	assert.Equal(t, []string{"root"}, a.Ancestors())
	assert.Equal(t, []int{2}, a.Sizes())

	root := byID(t, nodes, "root")
	assert.True(t, root.IsRoot())
	assert.Empty(t, root.Ancestors())
	assert.Equal(t, []string{"A", "B"}, root.Descendants()[0])

	idx, ok := x.ChainIndex("B")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	idx, ok = x.ChainIndex("")
	assert.False(t, ok)
	assert.Equal(t, 0, idx)
}

func TestFlatten_ChainArraysStayAligned(t *testing.T) {
	doc := []*doctree.Element{
		el("r1", el("S", el("k1")), el("T", el("S", el("k2"), el("k3")))),
		el("r2", el("S")),
	}

	nodes, err := Flatten(doc)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, n := range nodes {
		assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
		seen[n.ID] = true

		if n.IsRoot() {
			assert.Empty(t, n.Ancestors())
			assert.Len(t, n.Descendants(), 1)
			continue
		}
		assert.Len(t, n.Descendants(), len(n.Ancestors()), n.ID)
		assert.Len(t, n.Sizes(), len(n.Ancestors()), n.ID)
		for i, d := range n.Descendants() {
			assert.Equal(t, len(d), n.Sizes()[i], "%s chain %d", n.ID, i)
		}
	}

	s := byID(t, nodes, "S")
	assert.Equal(t, []string{"r1", "T", "r2"}, s.Ancestors())
	assert.Equal(t, [][]string{{"k1"}, {"k2", "k3"}, {}}, s.Descendants())
}

func TestFlatten_RepeatedParentIsIgnored(t *testing.T) {
	doc := []*doctree.Element{
		el("P", el("C", el("g1")), el("C", el("g2"))),
	}

	nodes, err := Flatten(doc)
	require.NoError(t, err)

	c := byID(t, nodes, "C")
	require.Len(t, c.Chains, 1)
	assert.Equal(t, []string{"g1"}, c.Chains[0].Children)
	assert.Len(t, nodes, 4)
}

func TestFlatten_Idempotent(t *testing.T) {
	doc := []*doctree.Element{
		el("root", el("A", el("X")), el("B", el("X"))),
	}

	first, err := Flatten(doc)
	require.NoError(t, err)
	second, err := Flatten(doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFlatten_MissingID(t *testing.T) {
	tests := []struct {
		name string
		doc  []*doctree.Element
	}{
		{
			name: "top-level element",
			doc:  []*doctree.Element{{Label: "nameless"}},
		},
		{
			name: "nested child",
			doc:  []*doctree.Element{el("root", el("A", &doctree.Element{Label: "nameless"}))},
		},
		{
			name: "nil child",
			doc:  []*doctree.Element{el("root", nil)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Flatten(tt.doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedDocument))
			assert.Nil(t, nodes)
		})
	}
}

func TestComputeStats(t *testing.T) {
	doc := []*doctree.Element{
		el("root", el("A", el("X"), el("Y")), el("B", el("X"))),
	}
	nodes, err := Flatten(doc)
	require.NoError(t, err)

	stats := ComputeStats(nodes)
	assert.Equal(t, 5, stats.Nodes)
	assert.Equal(t, 1, stats.Roots)
	assert.Equal(t, 1, stats.MultiParent)
	assert.Equal(t, 2, stats.MaxChains)
	assert.Equal(t, 5, stats.Edges)
	assert.Equal(t, 6, doctree.Count(doc))
}
