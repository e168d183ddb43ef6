package ingest

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxonomy-browser/internal/taxonomy"
)

func TestDecodeXML_Fixture(t *testing.T) {
	f, err := os.Open("testdata/structure.xml")
	require.NoError(t, err)
	defer f.Close()

	roots, err := DecodeXML(f)
	require.NoError(t, err)
	require.Len(t, roots, 1)

	root := roots[0]
	assert.Equal(t, "fall11", root.ID)
	assert.Equal(t, "ImageNet 2011 Fall Release", root.Label)
	assert.Equal(t, []string{"n00001", "n00002"}, root.ChildIDs())
	assert.Equal(t, "animal, beast", root.Children[0].Label)
	assert.Equal(t, "a living organism", root.Children[0].Description)

	nodes, err := Flatten(roots)
	require.NoError(t, err)
	require.Len(t, nodes, 5)

	bird := byID(t, nodes, "n00011")
	assert.Equal(t, []string{"n00001", "n00002"}, bird.Ancestors())
}

func TestDecodeXML_DeclaredCharset(t *testing.T) {
	f, err := os.Open("testdata/latin1.xml")
	require.NoError(t, err)
	defer f.Close()

	roots, err := DecodeXML(f)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "café", roots[0].Description)
}

func TestDecodeXML_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not xml", doc: "{\"id\": 1}"},
		{name: "truncated", doc: `<ImageNetStructure><synset wnid="a">`},
		{name: "no synsets", doc: `<ImageNetStructure><releaseData>x</releaseData></ImageNetStructure>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeXML(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedDocument))
		})
	}
}

func TestDecodeXML_MissingWNIDFailsFlatten(t *testing.T) {
	doc := `<ImageNetStructure><synset wnid="r"><synset words="no id"/></synset></ImageNetStructure>`

	roots, err := DecodeXML(strings.NewReader(doc))
	require.NoError(t, err)

	_, err = Flatten(roots)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestRecords_RoundTrip(t *testing.T) {
	nodes := []taxonomy.Node{
		{ID: "R", Label: "Root", Chains: []taxonomy.Chain{{Children: []string{"A"}, Size: 1}}},
		{ID: "A", Label: "Animal", Description: "living", Chains: []taxonomy.Chain{{AncestorID: "R", Children: []string{}, Size: 7}}},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeRecords(&buf, nodes))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))

	decoded, err := DecodeRecords(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, nodes[0].Chains, decoded[0].Chains)
	assert.Equal(t, 7, decoded[1].Chains[0].Size)
	assert.Equal(t, "living", decoded[1].Description)
}

func TestDecodeRecords_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "invalid json",
			input: "{not json}\n",
		},
		{
			name:  "missing id",
			input: `{"label":"x","ancestors":[],"descendants":[[]]}` + "\n",
		},
		{
			name: "duplicate id",
			input: `{"id":"a","label":"x","ancestors":[],"descendants":[[]]}` + "\n" +
				`{"id":"a","label":"y","ancestors":[],"descendants":[[]]}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecords(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrMalformedDocument)
		})
	}
}

func TestDecodeRecords_SkipsBlankLines(t *testing.T) {
	input := "\n" + `{"id":"a","label":"x","ancestors":[],"descendants":[["b"]]}` + "\n\n"

	nodes, err := DecodeRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, []int{1}, nodes[0].Sizes())
}
