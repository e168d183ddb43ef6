package ingest

import (
	"errors"
	"fmt"
	"strings"

	"taxonomy-browser/internal/doctree"
	"taxonomy-browser/internal/taxonomy"
)

var (
	// ErrMalformedDocument is returned when the document lacks a required field.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrSourceUnavailable is returned when the document cannot be fetched.
	ErrSourceUnavailable = errors.New("document source unavailable")
)

// flattener accumulates records during a single walk.
type flattener struct {
	index map[string]int
	nodes []taxonomy.Node
}

// Flatten walks the document forests depth first and returns one node per
// unique id, in first-discovery order. A node reached through several
// parents gets one chain per distinct parent. Nothing is returned when any
// element lacks an id.
func Flatten(roots []*doctree.Element) ([]taxonomy.Node, error) {
	f := &flattener{index: make(map[string]int)}
	if err := f.walk(roots, "", nil); err != nil {
		return nil, err
	}
	return f.nodes, nil
}

func (f *flattener) walk(level []*doctree.Element, parentID string, trail []string) error {
	for pos, el := range level {
		if el == nil || el.ID == "" {
			return fmt.Errorf("%w: element %d under %s has no id", ErrMalformedDocument, pos, describeTrail(trail))
		}
		for _, c := range el.Children {
			if c == nil || c.ID == "" {
				return fmt.Errorf("%w: child of %s has no id", ErrMalformedDocument, el.ID)
			}
		}

		f.visit(el, parentID)

		if len(el.Children) > 0 {
			if err := f.walk(el.Children, el.ID, append(trail, el.ID)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *flattener) visit(el *doctree.Element, parentID string) {
	children := el.ChildIDs()

	i, seen := f.index[el.ID]
	if !seen {
		f.index[el.ID] = len(f.nodes)
		f.nodes = append(f.nodes, taxonomy.Node{
			ID:          el.ID,
			Label:       el.Label,
			Description: el.Description,
			Chains: []taxonomy.Chain{{
				AncestorID: parentID,
				Children:   children,
				Size:       len(children),
			}},
		})
		return
	}

	node := &f.nodes[i]
	for _, c := range node.Chains {
		if c.AncestorID == parentID {
			return
		}
	}
	node.Chains = append(node.Chains, taxonomy.Chain{
		AncestorID: parentID,
		Children:   children,
		Size:       len(children),
	})
}

func describeTrail(trail []string) string {
	if len(trail) == 0 {
		return "document root"
	}
	return strings.Join(trail, " > ")
}
