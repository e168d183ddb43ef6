package taxonomy

import (
	"errors"
	"fmt"
)

// ErrUnknownAncestor is returned by ResolveChain when the requested ancestor
// is not one of the node's parents. It is not fatal: the default chain is
// still returned alongside it.
var ErrUnknownAncestor = errors.New("unknown ancestor")

// DefaultChain is the chain used when no ancestor is given.
const DefaultChain = 0

// ChainIndex returns the position of ancestorID among the node's chains.
// The second result is false when ancestorID is empty or not a parent of
// the node, so a genuine match at index 0 can be told apart from a miss.
func (n *Node) ChainIndex(ancestorID string) (int, bool) {
	if ancestorID == "" {
		return DefaultChain, false
	}
	for i, c := range n.Chains {
		if c.AncestorID == ancestorID {
			return i, true
		}
	}
	return DefaultChain, false
}

// ResolveChain returns the chain index to use for ancestorID.
// An empty ancestor selects the default chain. An unknown ancestor also
// selects the default chain but reports ErrUnknownAncestor.
func (n *Node) ResolveChain(ancestorID string) (int, error) {
	idx, ok := n.ChainIndex(ancestorID)
	if ok || ancestorID == "" {
		return idx, nil
	}
	return DefaultChain, fmt.Errorf("%w: %s is not a parent of %s", ErrUnknownAncestor, ancestorID, n.ID)
}

// ChainCount returns how many chains the node has.
func (n *Node) ChainCount() int {
	return len(n.Chains)
}

// DescendantsOf returns the children of the chain at idx, or an empty slice
// when the node has no such chain.
func (n *Node) DescendantsOf(idx int) []string {
	if idx < 0 || idx >= len(n.Chains) {
		return []string{}
	}
	children := n.Chains[idx].Children
	if children == nil {
		return []string{}
	}
	return children
}
