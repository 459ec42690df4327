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

// Package runstats implements C7 (spec.md §4.7): mean read length and
// median per-contig depth, accumulated over one streaming sweep.
package runstats

import (
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/strdenovo/region"
)

// AutosomeCutoff is the highest contig id admitted into the depth
// histogram (spec.md §4.7, §9 Open Question: "the intent being the human
// autosomes indexed in standard BAM header order, starting at 0").
const AutosomeCutoff = 22

// Calculator accumulates read-length and per-contig read-count totals
// during a sweep, the Go analogue of the original RunStats accumulator.
type Calculator struct {
	totalReads  int64
	sumLengths  int64
	readsByContig map[int]int64
}

// NewCalculator builds an empty Calculator.
func NewCalculator() *Calculator {
	return &Calculator{readsByContig: make(map[int]int64)}
}

// Inspect records one read's contig id and length (spec.md §4.7). Contig
// ids beyond AutosomeCutoff are counted toward totals but excluded from the
// per-contig histogram; the unaligned contig id (region.Unaligned) is
// admitted into the histogram but dropped at Estimate time.
func (c *Calculator) Inspect(contigID int, readLength int) {
	c.totalReads++
	c.sumLengths += int64(readLength)
	if contigID == region.Unaligned || contigID <= AutosomeCutoff {
		c.readsByContig[contigID]++
	}
}

// Estimate is Estimate() from spec.md §4.7: mean read length, and median
// per-contig depth over the autosomes seen (computed against contigLength
// from contigs). It fails if no reads were ever seen, or if the depth
// histogram (after dropping the unaligned bucket) is empty.
type Estimate struct {
	MeanReadLength int64
	Depth          float64
}

// ContigLength resolves a contig id to its length in bases; implementations
// typically close over a *refcontig.Table.
type ContigLength func(contigID int) int64

// Finalize computes the Estimate. Per spec.md §4.7, with no reads observed
// this is a fatal error; with reads observed but no usable per-contig depth
// sample (e.g. every read was unaligned), median-of-empty-set is a
// LogicError.
func (c *Calculator) Finalize(contigLength ContigLength) (Estimate, error) {
	if c.totalReads == 0 {
		return Estimate{}, errors.E(errors.Precondition, "runstats: no reads observed")
	}
	meanReadLength := c.sumLengths / c.totalReads

	depths := make([]float64, 0, len(c.readsByContig))
	for contigID, readCount := range c.readsByContig {
		if contigID == region.Unaligned {
			continue
		}
		length := contigLength(contigID)
		if length <= 0 {
			continue
		}
		depths = append(depths, float64(readCount)*float64(meanReadLength)/float64(length))
	}
	if len(depths) == 0 {
		return Estimate{}, errors.E(errors.Precondition, "runstats: median of empty depth sample")
	}

	return Estimate{MeanReadLength: meanReadLength, Depth: median(depths)}, nil
}

func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2.0
}
