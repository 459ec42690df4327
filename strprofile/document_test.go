package strprofile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentMarshalFlattensMotifs(t *testing.T) {
	doc := Document{
		ReadLength: 150,
		Depth:      32.5,
		Motifs: map[string]*MotifProfile{
			"CCG": {RepeatUnit: "CCG", AnchoredIrrCount: 3, IrrPairCount: 1, Regions: map[string]int{"chr1:10-20": 3}},
		},
	}
	encoded, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &raw))
	assert.Contains(t, raw, "ReadLength")
	assert.Contains(t, raw, "Depth")
	assert.Contains(t, raw, "CCG")
	assert.NotContains(t, raw, "Motifs")
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := Document{
		ReadLength: 150,
		Depth:      32.5,
		Motifs: map[string]*MotifProfile{
			"CCG":   {RepeatUnit: "CCG", AnchoredIrrCount: 3, IrrPairCount: 1, Regions: map[string]int{"chr1:10-20": 3}},
			"AAATG": {RepeatUnit: "AAATG", AnchoredIrrCount: 0, IrrPairCount: 2},
		},
	}
	encoded, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, doc.ReadLength, decoded.ReadLength)
	assert.Equal(t, doc.Depth, decoded.Depth)
	require.Contains(t, decoded.Motifs, "CCG")
	assert.Equal(t, doc.Motifs["CCG"].RepeatUnit, decoded.Motifs["CCG"].RepeatUnit)
	assert.Equal(t, doc.Motifs["CCG"].Regions, decoded.Motifs["CCG"].Regions)
	require.Contains(t, decoded.Motifs, "AAATG")
	assert.Equal(t, 2, decoded.Motifs["AAATG"].IrrPairCount)
}

func TestDocumentUnmarshalMissingReadLength(t *testing.T) {
	var doc Document
	err := json.Unmarshal([]byte(`{"Depth": 10.0, "CCG": {"RepeatUnit": "CCG"}}`), &doc)
	assert.Error(t, err)
}

func TestDocumentUnmarshalMissingDepth(t *testing.T) {
	var doc Document
	err := json.Unmarshal([]byte(`{"ReadLength": 150, "CCG": {"RepeatUnit": "CCG"}}`), &doc)
	assert.Error(t, err)
}

func TestDocumentUnmarshalMalformed(t *testing.T) {
	var doc Document
	err := json.Unmarshal([]byte(`not json`), &doc)
	assert.Error(t, err)
}
