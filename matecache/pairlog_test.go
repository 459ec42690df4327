package matecache

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopWriteCloser struct {
	*bytes.Buffer
}

func (nopWriteCloser) Close() error { return nil }

func TestPairLogWritesSnappyCompressedTSV(t *testing.T) {
	var buf bytes.Buffer
	log := newPairLog(nopWriteCloser{&buf})

	require.NoError(t, log.writeHeader())
	log.writeRow("irr_pair", "CCG", "irr", "chr1:10-11", "irr", "chr1:500-501", "fragA")
	require.NoError(t, log.close())

	r := snappy.NewReader(&buf)
	scanner := bufio.NewScanner(r)

	require.True(t, scanner.Scan())
	assert.Equal(t, "pair_type\tmotif\trole\tpos\tmate_role\tmate_pos\tfragment_name", scanner.Text())

	require.True(t, scanner.Scan())
	fields := strings.Split(scanner.Text(), "\t")
	require.Len(t, fields, 7)
	assert.Equal(t, "irr_pair", fields[0])
	assert.Equal(t, "CCG", fields[1])
	assert.Equal(t, "fragA", fields[6])

	assert.False(t, scanner.Scan())
}
