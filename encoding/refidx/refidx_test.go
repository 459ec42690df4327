package refidx

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidIndex(t *testing.T) {
	idx := "chr1\t248956422\t6\t60\t61\nchr2\t242193529\t252513167\t60\t61\n"
	table, err := Parse(strings.NewReader(idx))
	require.NoError(t, err)
	assert.Equal(t, 2, table.NumContigs())
	assert.Equal(t, "chr1", table.Name(0))
	assert.Equal(t, int64(248956422), table.Size(0))
	id, ok := table.ID("2")
	require.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestParseSkipsBlankLines(t *testing.T) {
	idx := "chr1\t100\t6\t60\t61\n\nchr2\t200\t110\t60\t61\n"
	table, err := Parse(strings.NewReader(idx))
	require.NoError(t, err)
	assert.Equal(t, 2, table.NumContigs())
}

func TestParseMalformedLineTooFewFields(t *testing.T) {
	_, err := Parse(strings.NewReader("chr1\n"))
	assert.Error(t, err)
}

func TestParseMalformedLengthField(t *testing.T) {
	_, err := Parse(strings.NewReader("chr1\tnotanumber\t6\t60\t61\n"))
	assert.Error(t, err)
}

func TestParseEmptyIndexIsError(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.Error(t, err)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestParseScanErrorIsWrapped(t *testing.T) {
	_, err := Parse(errReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refidx: reading .fai stream")
}
