package taxonomy

import (
	"encoding/json"
	"fmt"
)

// Chain is one parent-specific view of a node's children.
// The root chain of a top-level node has an empty AncestorID.
type Chain struct {
	AncestorID string
	Children   []string
	Size       int
}

// Node is a single taxonomy entry. Chains are kept in discovery order; the
// position of a chain in the slice is its chain index.
type Node struct {
	ID          string
	Label       string
	Description string
	Chains      []Chain
}

// IsRoot reports whether the node has no parent at all.
func (n *Node) IsRoot() bool {
	return len(n.Chains) == 0 || (len(n.Chains) == 1 && n.Chains[0].AncestorID == "")
}

// Ancestors returns the ancestor id of every chain in chain order.
// A root has no ancestors even though it carries one chain.
func (n *Node) Ancestors() []string {
	if n.IsRoot() {
		return []string{}
	}
	ancestors := make([]string, len(n.Chains))
	for i, c := range n.Chains {
		ancestors[i] = c.AncestorID
	}
	return ancestors
}

// Descendants returns the child list of every chain.
func (n *Node) Descendants() [][]string {
	if len(n.Chains) == 0 {
		return [][]string{{}}
	}
	descendants := make([][]string, len(n.Chains))
	for i, c := range n.Chains {
		children := c.Children
		if children == nil {
			children = []string{}
		}
		descendants[i] = children
	}
	return descendants
}

// Sizes returns the stored size of every chain.
func (n *Node) Sizes() []int {
	if len(n.Chains) == 0 {
		return []int{0}
	}
	sizes := make([]int, len(n.Chains))
	for i, c := range n.Chains {
		sizes[i] = c.Size
	}
	return sizes
}

// SizeAt returns the size of the chain at idx and whether that chain exists.
func (n *Node) SizeAt(idx int) (int, bool) {
	if idx < 0 || idx >= len(n.Chains) {
		return 0, false
	}
	return n.Chains[idx].Size, true
}

// record is the flat wire shape of a node.
type record struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Ancestors   []string   `json:"ancestors"`
	Descendants [][]string `json:"descendants"`
	Size        []int      `json:"size,omitempty"`
}

// MarshalJSON encodes the node as parallel ancestors/descendants/size arrays.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(record{
		ID:          n.ID,
		Label:       n.Label,
		Description: n.Description,
		Ancestors:   n.Ancestors(),
		Descendants: n.Descendants(),
		Size:        n.Sizes(),
	})
}

// UnmarshalJSON decodes the flat wire shape. When size is absent it is
// derived from the descendant lists; otherwise it is taken verbatim.
func (n *Node) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.ID == "" {
		return fmt.Errorf("record without id")
	}

	chainCount := len(r.Descendants)
	if len(r.Ancestors) > chainCount {
		chainCount = len(r.Ancestors)
	}
	if chainCount == 0 {
		chainCount = 1
	}
	if len(r.Size) > 0 && len(r.Size) != chainCount {
		return fmt.Errorf("record %s: %d sizes for %d chains", r.ID, len(r.Size), chainCount)
	}
	if len(r.Ancestors) > 0 && len(r.Ancestors) != chainCount {
		return fmt.Errorf("record %s: %d ancestors for %d chains", r.ID, len(r.Ancestors), chainCount)
	}

	chains := make([]Chain, chainCount)
	for i := range chains {
		if i < len(r.Ancestors) {
			chains[i].AncestorID = r.Ancestors[i]
		}
		if i < len(r.Descendants) {
			chains[i].Children = r.Descendants[i]
		}
		if chains[i].Children == nil {
			chains[i].Children = []string{}
		}
		if len(r.Size) > 0 {
			chains[i].Size = r.Size[i]
		} else {
			chains[i].Size = len(chains[i].Children)
		}
	}

	*n = Node{
		ID:          r.ID,
		Label:       r.Label,
		Description: r.Description,
		Chains:      chains,
	}
	return nil
}
