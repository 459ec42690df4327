package region

import (
	"github.com/biogo/store/llrb"
)

// llrbEntry adapts a Region into biogo/store/llrb's Comparable interface so
// that SortAndMerge can obtain a deterministic, sorted traversal order the
// same way encoding/bampair's ShardInfo orders shards by (refID, start) — see
// DESIGN.md. seq breaks ties between regions with identical (ContigID,
// Start, End) so that the tree never silently drops one of two otherwise
// identical observations (e.g. two distinct reads anchoring at the same
// base).
type llrbEntry struct {
	r   Region
	seq int
}

func (e llrbEntry) Compare(other llrb.Comparable) int {
	o := other.(llrbEntry)
	a := e.r
	b := o.r
	if a.ContigID != b.ContigID {
		return a.ContigID - b.ContigID
	}
	if a.Start != b.Start {
		if a.Start < b.Start {
			return -1
		}
		return 1
	}
	if a.End != b.End {
		if a.End < b.End {
			return -1
		}
		return 1
	}
	return e.seq - o.seq
}

// SortAndMerge implements C6 (spec.md §4.6): sort regions by
// (ContigID, Start, End), then sweep left to right merging any region into
// the open one when Distance <= maxMergeDistance on the same contig,
// combining features along the way. It runs in-place in spirit (the input
// slice's contents are not reused after the call) and is idempotent:
// SortAndMerge(SortAndMerge(x)) == SortAndMerge(x).
func SortAndMerge(regions []Region, maxMergeDistance int64) []Region {
	if len(regions) == 0 {
		return regions
	}

	tree := &llrb.Tree{}
	for i, r := range regions {
		tree.Insert(llrbEntry{r: r, seq: i})
	}

	sorted := make([]Region, 0, len(regions))
	tree.Do(func(c llrb.Comparable) (done bool) {
		sorted = append(sorted, c.(llrbEntry).r)
		return false
	})

	merged := make([]Region, 0, len(sorted))
	open := sorted[0]
	for _, next := range sorted[1:] {
		if Distance(open, next) <= maxMergeDistance {
			if next.End > open.End {
				open.End = next.End
			}
			open.Value = open.Value.Combine(next.Value)
		} else {
			merged = append(merged, open)
			open = next
		}
	}
	merged = append(merged, open)
	return merged
}
