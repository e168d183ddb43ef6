package ingest

import (
	"bufio"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	"taxonomy-browser/internal/doctree"
	"taxonomy-browser/internal/taxonomy"
)

// xmlSynset mirrors a <synset wnid words gloss> element of the structure file.
type xmlSynset struct {
	WNID     string      `xml:"wnid,attr"`
	Words    string      `xml:"words,attr"`
	Gloss    string      `xml:"gloss,attr"`
	Children []xmlSynset `xml:"synset"`
}

// xmlStructure is the document root. Its own attributes and metadata
// (releaseData) are not part of the taxonomy.
type xmlStructure struct {
	Synsets []xmlSynset `xml:"synset"`
}

// DecodeXML parses a structure document into its top-level element forests.
// The declared encoding is honoured.
func DecodeXML(r io.Reader) ([]*doctree.Element, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var doc xmlStructure
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if len(doc.Synsets) == 0 {
		return nil, fmt.Errorf("%w: no top-level synset elements", ErrMalformedDocument)
	}

	roots := make([]*doctree.Element, len(doc.Synsets))
	for i := range doc.Synsets {
		roots[i] = toElement(&doc.Synsets[i])
	}
	return roots, nil
}

func toElement(s *xmlSynset) *doctree.Element {
	el := &doctree.Element{
		ID:          s.WNID,
		Label:       s.Words,
		Description: s.Gloss,
	}
	if len(s.Children) > 0 {
		el.Children = make([]*doctree.Element, len(s.Children))
		for i := range s.Children {
			el.Children[i] = toElement(&s.Children[i])
		}
	}
	return el
}

// DecodeRecords reads newline-delimited JSON node records, as written by
// EncodeRecords. Sizes present in a record are kept verbatim. Duplicate ids
// are rejected.
func DecodeRecords(r io.Reader) ([]taxonomy.Node, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var nodes []taxonomy.Node
	seen := make(map[string]struct{})
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var n taxonomy.Node
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedDocument, line, err)
		}
		if _, dup := seen[n.ID]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate id %s", ErrMalformedDocument, line, n.ID)
		}
		seen[n.ID] = struct{}{}
		nodes = append(nodes, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return nodes, nil
}

// EncodeRecords writes one JSON record per line.
func EncodeRecords(w io.Writer, nodes []taxonomy.Node) error {
	enc := json.NewEncoder(w)
	for i := range nodes {
		if err := enc.Encode(nodes[i]); err != nil {
			return fmt.Errorf("encode record %s: %w", nodes[i].ID, err)
		}
	}
	return nil
}
