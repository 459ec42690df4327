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

// Package htsreader adapts github.com/grailbio/hts's bam.Reader into the
// repeatscan.RecordStream interface the core consumes (spec.md §6
// "Record stream"). It is the external collaborator spec.md deliberately
// keeps out of scope for the core algorithms.
package htsreader

import (
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/strdenovo/refcontig"
	"github.com/grailbio/strdenovo/repeatscan"
)

// decompressorParallelism matches cmd/bio-bam-sort/sorter's single-shard
// reader: this reads one file start to finish, not a parallel-sharded
// region, so there is nothing to gain from more bgzf decompressor workers.
const decompressorParallelism = 1

// Reader streams primary alignments from an open BAM/SAM source as
// repeatscan.Read records, filtering out secondary and supplementary
// alignments at the source (spec.md §6: "producing only primary alignment
// reads").
type Reader struct {
	r       *bam.Reader
	contigs *refcontig.Table
	cur     repeatscan.Read
	err     error
}

// NewReader wraps src (an open, positioned-at-start BAM/SAM stream) and
// builds the refcontig.Table describing its reference dictionary.
func NewReader(src io.Reader) (*Reader, *refcontig.Table, error) {
	r, err := bam.NewReader(src, decompressorParallelism)
	if err != nil {
		return nil, nil, errors.E(err, "htsreader: opening alignment stream")
	}

	refs := r.Header().Refs()
	namesAndSizes := make([]refcontig.NameSize, len(refs))
	for i, ref := range refs {
		namesAndSizes[i] = refcontig.NameSize{Name: ref.Name(), Size: int64(ref.Len())}
	}
	contigs := refcontig.NewTable(namesAndSizes)

	return &Reader{r: r, contigs: contigs}, contigs, nil
}

// Next implements repeatscan.RecordStream.
func (s *Reader) Next() bool {
	for {
		rec, err := s.r.Read()
		if err == io.EOF {
			return false
		}
		if err != nil {
			s.err = errors.E(err, "htsreader: reading alignment record")
			return false
		}
		if rec.Flags&(sam.Secondary|sam.Supplementary) != 0 {
			continue
		}
		s.cur = toRead(rec)
		return true
	}
}

// Record implements repeatscan.RecordStream.
func (s *Reader) Record() repeatscan.Read { return s.cur }

// Err implements repeatscan.RecordStream.
func (s *Reader) Err() error { return s.err }

func toRead(rec *sam.Record) repeatscan.Read {
	contigID := repeatscan.Unaligned
	if rec.Ref != nil {
		contigID = rec.Ref.ID()
	}
	mateContigID := repeatscan.Unaligned
	if rec.MateRef != nil {
		mateContigID = rec.MateRef.ID()
	}

	bases := rec.Seq.Expand()
	return repeatscan.Read{
		Name:         rec.Name,
		Bases:        string(bases),
		Quals:        string(rec.Qual),
		ContigID:     contigID,
		Pos:          int64(rec.Pos),
		MateContigID: mateContigID,
		MatePos:      int64(rec.MatePos),
		Mapq:         int(rec.MapQ),
		Flags:        int(rec.Flags),
		ReadLen:      len(bases),
	}
}
