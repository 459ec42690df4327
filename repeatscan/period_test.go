package repeatscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesAtOffsetBoundary(t *testing.T) {
	s := "ACGTACGT"
	assert.Equal(t, len(s), MatchesAtOffset(0, s))
	assert.Equal(t, 0, MatchesAtOffset(len(s), s))
	assert.Equal(t, 0, MatchesAtOffset(len(s)+5, s))
}

func TestFreqPanicsOnInvalidOffset(t *testing.T) {
	s := "ACGTACGT"
	assert.Panics(t, func() { Freq(0, s) })
	assert.Panics(t, func() { Freq(len(s)/2+1, s) })
}

func TestMatchFrequencyTable(t *testing.T) {
	s := "GGCCCCGGCCCC"
	want := map[int]float64{1: 0.73, 2: 0.40, 3: 0.33, 4: 0.25, 5: 0.57, 6: 1.00}
	for offset, freq := range want {
		assert.InDelta(t, freq, Freq(offset, s), 0.005, "offset %d", offset)
	}
}

func TestImperfectRepeatFrequency(t *testing.T) {
	s := "ATGATCATGTTGATG"
	assert.InDelta(t, float64(8)/float64(12), Freq(3, s), 1e-9)
}

func TestCanonicalizationExamples(t *testing.T) {
	assert.Equal(t, "CCG", Canonical("CGG"))
	assert.Equal(t, "CCG", Canonical("GCC"))
	assert.Equal(t, "CGG", MinimalRotation("GGC"))
}

func TestCanonicalMotifFromReadRepeatedMotif(t *testing.T) {
	motif := "AGCT"
	s := motif + motif + motif + motif // k=4 repeats
	got := CanonicalMotifFromRead(0.8, s, DefaultSizeRange)
	assert.Equal(t, Canonical(motif), got)
}

func TestCanonicalMotifFromReadIRRExamples(t *testing.T) {
	got := CanonicalMotifFromRead(0.8, "CGGCGCCGGCGG", DefaultSizeRange)
	assert.Equal(t, "CCG", got)

	got = CanonicalMotifFromRead(0.85, "CGGCGCCGGCGG", DefaultSizeRange)
	assert.Equal(t, "", got)

	got = CanonicalMotifFromRead(0.8, "ACCCCAACCCCAACCCCAACCCCAACCCCAACCCCA", DefaultSizeRange)
	assert.Equal(t, "AACCCC", got)
}

func TestCanonicalIdempotent(t *testing.T) {
	for _, m := range []string{"CGG", "AAATG", "C", "ACGT"} {
		assert.Equal(t, Canonical(m), Canonical(Canonical(m)))
		assert.Equal(t, Canonical(m), Canonical(ReverseComplement(m)))
	}
}
