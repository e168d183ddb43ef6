package doctree

// Element is one node of the nested source document.
type Element struct {
	ID          string     // Stable identifier (wnid in the ImageNet structure file)
	Label       string     // Display words
	Description string     // Gloss text
	Children    []*Element // Nested elements, in document order
}

// ChildIDs returns the ids of the direct children in document order.
func (e *Element) ChildIDs() []string {
	ids := make([]string, len(e.Children))
	for i, c := range e.Children {
		ids[i] = c.ID
	}
	return ids
}

// Count returns the number of elements in the given forests, counting
// repeated occurrences separately.
func Count(elements []*Element) int {
	total := 0
	for _, e := range elements {
		total += 1 + Count(e.Children)
	}
	return total
}
