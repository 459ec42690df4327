package strmerge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentMarshalShape(t *testing.T) {
	doc := Document{
		Counts: map[string]*MotifCounts{
			"CCG": {
				IrrPairCounts:         map[string]int{"s1": 2},
				RegionsWithIrrAnchors: map[string]map[string]int{"chr1:10-20": {"s1": 3}},
			},
		},
		Parameters: Parameters{
			ReadLengths: map[string]int64{"s1": 150},
			Depths:      map[string]float64{"s1": 32.5},
		},
	}
	encoded, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &raw))
	assert.Contains(t, raw, "Counts")
	assert.Contains(t, raw, "Parameters")
}

func TestMotifCountsOmitsEmptyFields(t *testing.T) {
	mc := MotifCounts{}
	encoded, err := json.Marshal(mc)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(encoded))
}
