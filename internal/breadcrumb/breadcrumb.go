// Package breadcrumb computes navigation trails through the taxonomy.
//
// Next is a pure transition function: given the displayed path and a
// navigation event it returns the path to display next. It never fails and
// never modifies its input.
package breadcrumb

import (
	"bytes"
	"encoding/json"
)

// Entry is one step of a breadcrumb path. A gap entry stands for a collapsed,
// non-contiguous part of the trail and carries no ids.
type Entry struct {
	AncestorID string `json:"ancestor,omitempty"`
	ID         string `json:"id,omitempty"`
	Label      string `json:"label,omitempty"`
	Gap        bool   `json:"gap,omitempty"`
}

// GapEntry returns the gap sentinel.
func GapEntry() Entry {
	return Entry{Gap: true}
}

// IsGap reports whether e is the gap sentinel.
func (e Entry) IsGap() bool {
	return e.Gap
}

// UnmarshalJSON accepts a JSON null as the gap sentinel.
func (e *Entry) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*e = GapEntry()
		return nil
	}
	type plain Entry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Entry(p)
	if e.Gap {
		*e = GapEntry()
	}
	return nil
}

// Path is the ordered trail from the top of the hierarchy to the focused
// node. A nil Path means navigation has not started yet.
type Path []Entry

// Clone returns an independent copy of p. The copy of an empty path is
// empty, not nil.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Event describes one navigation action.
type Event struct {
	AncestorID     string `json:"ancestor,omitempty"`
	ID             string `json:"id,omitempty"`
	Label          string `json:"label,omitempty"`
	IsSearchResult bool   `json:"isSearchResult"`
	RootID         string `json:"rootId,omitempty"`
}

// Kind is the navigation variant of an event.
type Kind int

const (
	// Home resets the trail.
	Home Kind = iota
	// Refocus re-selects the focused top node.
	Refocus
	// Navigate descends into a child or moves back to a visited node.
	Navigate
	// SearchJump lands on a node picked from search results.
	SearchJump
)

func (k Kind) String() string {
	switch k {
	case Home:
		return "home"
	case Refocus:
		return "refocus"
	case Navigate:
		return "navigate"
	case SearchJump:
		return "search_jump"
	default:
		return "unknown"
	}
}

// Classify maps an event to its navigation variant.
func Classify(ev Event) Kind {
	switch {
	case ev.AncestorID == "" && ev.ID == "":
		return Home
	case ev.AncestorID == "":
		return Refocus
	case !ev.IsSearchResult:
		return Navigate
	default:
		return SearchJump
	}
}

// Next returns the path to display after ev.
func Next(path Path, ev Event) Path {
	if path == nil {
		return Path{}
	}

	kind := Classify(ev)
	switch kind {
	case Home:
		return Path{}
	case Refocus:
		return path.Clone()
	}

	match, parentMatch := scan(path, ev)
	entry := Entry{AncestorID: ev.AncestorID, ID: ev.ID, Label: ev.Label}

	if kind == Navigate {
		if match < 0 {
			return append(path.Clone(), entry)
		}
		back := truncate(path, match)
		if len(back) == 1 && back[0].IsGap() {
			return Path{}
		}
		return back
	}

	if ev.AncestorID == ev.RootID {
		return Path{entry}
	}
	if match >= 0 {
		return truncate(path, match)
	}
	if parentMatch < 0 {
		return Path{GapEntry(), entry}
	}
	return append(truncate(path, parentMatch), entry)
}

// scan returns the indexes of the entries matching the event target and its
// ancestor, or -1 when absent. Later entries win.
func scan(path Path, ev Event) (match, parentMatch int) {
	match, parentMatch = -1, -1
	for i, e := range path {
		if e.IsGap() {
			continue
		}
		if e.ID == ev.AncestorID {
			parentMatch = i
		}
		if e.ID == ev.ID {
			match = i
		}
	}
	return match, parentMatch
}

// truncate returns a copy of the first idx+1 entries of path.
func truncate(path Path, idx int) Path {
	out := make(Path, idx+1)
	copy(out, path[:idx+1])
	return out
}
