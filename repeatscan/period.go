package repeatscan

import (
	"github.com/grailbio/base/errors"
)

// SizeRange is a closed, inclusive motif-length range, e.g. [2, 20].
type SizeRange struct {
	Lo, Hi int
}

// Contains reports whether n falls within [Lo, Hi].
func (r SizeRange) Contains(n int) bool {
	return n >= r.Lo && n <= r.Hi
}

// DefaultSizeRange is the motif-size range used when none is configured
// (spec.md §4.2).
var DefaultSizeRange = SizeRange{Lo: 1, Hi: 20}

// MatchesAtOffset counts positions i in [0, len(s)-offset) where
// s[i] == s[i+offset]. Unlike Freq, it is defined for every non-negative
// offset: MatchesAtOffset(0, s) == len(s) (every position trivially matches
// itself), and it is 0 once offset >= len(s) (spec.md §8 boundary
// behavior).
func MatchesAtOffset(offset int, s string) int {
	matches := 0
	for i := 0; i+offset < len(s); i++ {
		if s[i] == s[i+offset] {
			matches++
		}
	}
	return matches
}

// Freq returns MatchesAtOffset(offset, s) / (len(s) - offset). It fails
// (LogicError) for offset <= 0 or offset > len(s)/2, per spec.md §4.2/§8.
func Freq(offset int, s string) float64 {
	if offset <= 0 || offset > len(s)/2 {
		panic(errors.E(errors.Precondition, "invalid offset for Freq", offset, s))
	}
	return float64(MatchesAtOffset(offset, s)) / float64(len(s)-offset)
}

// SmallestFrequentPeriod scans offsets from high to low within [lo, hi]
// (clamped to [1, len(s)/2]), keeping a running best frequency that starts
// at minFrequency. It returns the offset with the highest match-frequency
// (ties favor the smaller offset since the scan runs downward), or -1 if
// none reaches minFrequency.
func SmallestFrequentPeriod(minFrequency float64, s string, r SizeRange) int {
	lo := r.Lo
	if lo < 1 {
		lo = 1
	}
	hi := r.Hi
	if maxOffset := len(s) / 2; hi > maxOffset {
		hi = maxOffset
	}

	best := minFrequency
	bestOffset := -1
	for offset := hi; offset >= lo; offset-- {
		freq := Freq(offset, s)
		if freq >= best {
			best = freq
			bestOffset = offset
		}
	}
	return bestOffset
}

// ConsensusMotif builds the length-k consensus motif from s: the r-th base
// of the motif is the most frequent symbol among s[r], s[r+k], s[r+2k], ...;
// on a tie, the symbol seen last among the tied ones wins.
func ConsensusMotif(k int, s string) string {
	out := make([]byte, k)
	for r := 0; r < k; r++ {
		var order []byte
		counts := make(map[byte]int)
		for i := r; i < len(s); i += k {
			b := s[i]
			if _, seen := counts[b]; !seen {
				order = append(order, b)
			}
			counts[b]++
		}
		bestBase := order[0]
		bestCount := counts[bestBase]
		for _, b := range order[1:] {
			if counts[b] >= bestCount {
				bestBase = b
				bestCount = counts[b]
			}
		}
		out[r] = bestBase
	}
	return string(out)
}

// CanonicalMotifFromRead implements C2's canonicalMotifFromRead: find the
// smallest frequent period, extract its consensus motif, attempt to
// compress that motif further (catching cases like AAATGAAATG -> AAATG),
// and return the canonical form. It returns "" if no period reaches
// minFrequency.
func CanonicalMotifFromRead(minFrequency float64, s string, r SizeRange) string {
	k := SmallestFrequentPeriod(minFrequency, s, r)
	if k == -1 {
		return ""
	}
	motif := ConsensusMotif(k, s)

	const perfectMatch = 1.0
	if reduced := SmallestFrequentPeriod(perfectMatch, motif, SizeRange{Lo: 1, Hi: len(motif)}); reduced != -1 && reduced != k {
		motif = ConsensusMotif(reduced, motif)
	}
	return Canonical(motif)
}
