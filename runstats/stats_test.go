package runstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/strdenovo/region"
)

func TestFinalizeNoReadsIsFatal(t *testing.T) {
	c := NewCalculator()
	_, err := c.Finalize(func(int) int64 { return 1000 })
	assert.Error(t, err)
}

func TestFinalizeMeanReadLength(t *testing.T) {
	c := NewCalculator()
	c.Inspect(0, 100)
	c.Inspect(0, 100)
	c.Inspect(0, 150)
	est, err := c.Finalize(func(int) int64 { return 1000 })
	require.NoError(t, err)
	assert.Equal(t, int64(116), est.MeanReadLength) // (100+100+150)/3 = 116 (truncated)
}

func TestFinalizeMedianDepthAcrossContigs(t *testing.T) {
	c := NewCalculator()
	for i := 0; i < 10; i++ {
		c.Inspect(0, 100)
	}
	for i := 0; i < 20; i++ {
		c.Inspect(1, 100)
	}
	for i := 0; i < 30; i++ {
		c.Inspect(2, 100)
	}
	lengths := map[int]int64{0: 1000, 1: 1000, 2: 1000}
	est, err := c.Finalize(func(id int) int64 { return lengths[id] })
	require.NoError(t, err)
	// depths: contig0 = 10*100/1000 = 1.0, contig1 = 2.0, contig2 = 3.0; median = 2.0
	assert.InDelta(t, 2.0, est.Depth, 1e-9)
}

func TestFinalizeDropsUnalignedFromDepthHistogram(t *testing.T) {
	c := NewCalculator()
	c.Inspect(region.Unaligned, 100)
	c.Inspect(0, 100)
	est, err := c.Finalize(func(int) int64 { return 1000 })
	require.NoError(t, err)
	assert.InDelta(t, 0.1, est.Depth, 1e-9)
}

func TestFinalizeDropsContigsBeyondAutosomeCutoff(t *testing.T) {
	c := NewCalculator()
	c.Inspect(0, 100)
	c.Inspect(AutosomeCutoff+1, 100) // excluded from the per-contig histogram
	est, err := c.Finalize(func(int) int64 { return 1000 })
	require.NoError(t, err)
	assert.InDelta(t, 0.1, est.Depth, 1e-9)
}

func TestFinalizeEmptyDepthSampleIsLogicError(t *testing.T) {
	c := NewCalculator()
	c.Inspect(region.Unaligned, 100)
	_, err := c.Finalize(func(int) int64 { return 1000 })
	assert.Error(t, err)
}
