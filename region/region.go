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

// Package region implements genomic regions with mergeable, combinable
// counts, and the half-open ("contig:start-end" / "unaligned") textual
// encoding used throughout STR profile documents.
package region

import (
	"math"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/strdenovo/refcontig"
)

// Unaligned is the contig id used for reads/regions with no alignment.
const Unaligned = -1

// MaxMergeDistance is the default neighbor-merge threshold in base pairs
// (spec.md §3, "countable region").
const MaxMergeDistance = 500

// Feature is a count carried by a Region that knows how to combine with
// another instance of itself when two regions merge. CountFeature and
// SampleCountFeature are the only two concrete variants; there is
// deliberately no inheritance hierarchy behind this interface (see
// DESIGN.md).
type Feature interface {
	Combine(other Feature) Feature
}

// Region is a half-open interval [Start, End) on ContigID carrying a
// Feature.
type Region struct {
	ContigID int
	Start    int64
	End      int64
	Value    Feature
}

// New builds a region with a count of 1, the shape every freshly observed
// anchor/IRR position takes before merging.
func New(contigID int, start, end int64) Region {
	return Region{ContigID: contigID, Start: start, End: end, Value: CountFeature(1)}
}

// Less orders regions lexicographically by (ContigID, Start, End), the sort
// key sortAndMerge uses.
func Less(a, b Region) bool {
	if a.ContigID != b.ContigID {
		return a.ContigID < b.ContigID
	}
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.End < b.End
}

// Distance returns 0 when the two regions overlap, the gap between disjoint
// intervals on the same contig, or +Inf when the contigs differ. Unaligned
// regions (ContigID == Unaligned) are defined to be at distance 0 from one
// another and at infinite distance from any aligned region.
func Distance(a, b Region) int64 {
	if a.ContigID != b.ContigID {
		return math.MaxInt64
	}
	if a.ContigID == Unaligned {
		return 0
	}
	if a.End < b.Start {
		return b.Start - a.End
	}
	if b.End < a.Start {
		return a.Start - b.End
	}
	return 0
}

// Overlaps reports whether a and b share at least one position or abut
// (one ends exactly where the other starts), or are both unaligned, which
// are defined to always overlap.
func Overlaps(a, b Region) bool {
	if a.ContigID != b.ContigID {
		return false
	}
	if a.ContigID == Unaligned {
		return true
	}
	left := a.Start
	if b.Start > left {
		left = b.Start
	}
	right := a.End
	if b.End < right {
		right = b.End
	}
	return left <= right
}

// Encode renders a region as "contig:start-end", or the literal "unaligned"
// for the unaligned contig id, per spec.md's region-encoding grammar.
func Encode(r Region, contigs *refcontig.Table) string {
	if r.ContigID == Unaligned {
		return "unaligned"
	}
	name := contigs.Name(r.ContigID)
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte(':')
	b.WriteString(strconv.FormatInt(r.Start, 10))
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(r.End, 10))
	return b.String()
}

// Decode parses the region-encoding grammar used throughout this
// repository: "unaligned", or "<contig>:<start>-<end>" with the contig
// resolved (chr-prefix-tolerant) through contigs. It is a strict decoder:
// malformed encodings are a FormatError.
func Decode(contigs *refcontig.Table, encoding string) (contigID int, start, end int64, err error) {
	if encoding == "unaligned" {
		return Unaligned, 0, 0, nil
	}

	colon := strings.LastIndexByte(encoding, ':')
	if colon <= 0 || colon+1 == len(encoding) {
		return 0, 0, 0, errors.E(errors.Invalid, "malformed region encoding", encoding)
	}
	contigName := encoding[:colon]
	interval := encoding[colon+1:]

	if strings.Count(interval, "-") != 1 {
		return 0, 0, 0, errors.E(errors.Invalid, "malformed region encoding", encoding)
	}
	dash := strings.IndexByte(interval, '-')
	if dash == 0 || dash+1 == len(interval) {
		return 0, 0, 0, errors.E(errors.Invalid, "malformed region encoding", encoding)
	}

	contigID, ok := contigs.ID(contigName)
	if !ok {
		return 0, 0, 0, errors.E(errors.Invalid, "unknown contig in region encoding", contigName, encoding)
	}
	startVal, serr := strconv.ParseInt(interval[:dash], 10, 64)
	if serr != nil {
		return 0, 0, 0, errors.E(errors.Invalid, "malformed region start", encoding)
	}
	endVal, eerr := strconv.ParseInt(interval[dash+1:], 10, 64)
	if eerr != nil {
		return 0, 0, 0, errors.E(errors.Invalid, "malformed region end", encoding)
	}
	if startVal > endVal {
		return 0, 0, 0, errors.E(errors.Invalid, "region start after end", encoding)
	}

	return contigID, startVal, endVal, nil
}
