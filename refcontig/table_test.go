package refcontig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableChrPrefixTolerance(t *testing.T) {
	table := NewTable([]NameSize{
		{Name: "chr1", Size: 100},
		{Name: "2", Size: 200},
	})

	id, ok := table.ID("chr1")
	require.True(t, ok)
	assert.Equal(t, 0, id)

	id, ok = table.ID("1") // unprefixed lookup of a prefixed name
	require.True(t, ok)
	assert.Equal(t, 0, id)

	id, ok = table.ID("2")
	require.True(t, ok)
	assert.Equal(t, 1, id)

	id, ok = table.ID("chr2") // prefixed lookup of an unprefixed name
	require.True(t, ok)
	assert.Equal(t, 1, id)

	_, ok = table.ID("chr3")
	assert.False(t, ok)
}

func TestTableNameAndSize(t *testing.T) {
	table := NewTable([]NameSize{{Name: "chr1", Size: 100}})
	assert.Equal(t, "chr1", table.Name(0))
	assert.Equal(t, int64(100), table.Size(0))
	assert.Equal(t, 1, table.NumContigs())
}

func TestTableNameInvalidIDPanics(t *testing.T) {
	table := NewTable([]NameSize{{Name: "chr1", Size: 100}})
	assert.Panics(t, func() { table.Name(5) })
	assert.Panics(t, func() { table.Name(-1) })
}
