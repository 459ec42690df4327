// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package htsreader

import (
	"bytes"
	"testing"

	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/require"
)

// buildBAM writes a tiny in-memory BAM stream with one reference and the
// given records, returning the encoded bytes.
func buildBAM(t *testing.T, refs []*sam.Reference, records []*sam.Record) []byte {
	t.Helper()
	header, err := sam.NewHeader(nil, refs)
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := bam.NewWriter(&buf, header, 1)
	require.NoError(t, err)
	for _, rec := range records {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestReaderStreamsPrimaryRecords(t *testing.T) {
	ref, err := sam.NewReference("chr1", "", "", 1000000, nil, nil)
	require.NoError(t, err)

	rec1, err := sam.NewRecord("read1", ref, ref, 99, 199, 0, 60, nil, []byte("ACGTACGTACGT"), []byte("IIIIIIIIIIII"), nil)
	require.NoError(t, err)
	rec2, err := sam.NewRecord("read2", ref, ref, 299, 399, 0, 40, nil, []byte("TTTTGGGGCCCC"), []byte("IIIIIIIIIIII"), nil)
	require.NoError(t, err)
	rec2.Flags |= sam.Secondary

	data := buildBAM(t, []*sam.Reference{ref}, []*sam.Record{rec1, rec2})

	r, contigs, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 1, contigs.NumContigs())
	require.Equal(t, "chr1", contigs.Name(0))

	require.True(t, r.Next())
	got := r.Record()
	require.Equal(t, "read1", got.Name)
	require.Equal(t, "ACGTACGTACGT", got.Bases)
	require.Equal(t, 0, got.ContigID)
	require.Equal(t, int64(99), got.Pos)
	require.Equal(t, 60, got.Mapq)

	// rec2 is flagged Secondary and must be filtered out at the source.
	require.False(t, r.Next())
	require.NoError(t, r.Err())
}

func TestReaderReportsTruncatedStreamError(t *testing.T) {
	ref, err := sam.NewReference("chr1", "", "", 1000000, nil, nil)
	require.NoError(t, err)
	rec, err := sam.NewRecord("read1", ref, ref, 0, 0, 0, 60, nil, []byte("ACGT"), []byte("IIII"), nil)
	require.NoError(t, err)

	data := buildBAM(t, []*sam.Reference{ref}, []*sam.Record{rec})
	truncated := data[:len(data)-10]

	r, _, err := NewReader(bytes.NewReader(truncated))
	require.NoError(t, err)

	for r.Next() {
	}
	require.Error(t, r.Err())
}
