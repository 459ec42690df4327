package repeatscan

// DefaultMinBaseQuality is Q in spec.md §4.3: quality below this (Phred+33
// decoded) earns partial credit for a mismatch instead of the full penalty.
const DefaultMinBaseQuality = 20

const baseQualityOffset = 33

const (
	matchScore           = 1.0
	lowQualMismatchScore = 0.5
	mismatchPenalty      = -1.0
)

// Rotations returns the |m| distinct rotations of motif m (one per
// rotation offset, not deduplicated — a homopolymer's rotations are all
// equal, which is fine since MatchUnits just takes the max over them).
func Rotations(m string) []string {
	doubled := m + m
	out := make([]string, len(m))
	for offset := 0; offset < len(m); offset++ {
		out[offset] = doubled[offset : offset+len(m)]
	}
	return out
}

// MatchUnits scores a single window of len(bases)==len(quals)==|unit| (for
// every unit in rotations) against bases/quals, returning the best-scoring
// rotation's score. Per spec.md §4.3: +1.0 for a match, +0.5 for a mismatch
// at a base below minBaseQ, -1.0 for a high-confidence mismatch.
func MatchUnits(rotations []string, bases, quals string, minBaseQ int) float64 {
	best := matchScore * float64(len(bases)) * -2 // lower than any attainable score
	for _, unit := range rotations {
		score := 0.0
		for i := 0; i < len(bases); i++ {
			switch {
			case bases[i] == unit[i%len(unit)]:
				score += matchScore
			case int(quals[i])-baseQualityOffset < minBaseQ:
				score += lowQualMismatchScore
			default:
				score += mismatchPenalty
			}
		}
		if score > best {
			best = score
		}
	}
	return best
}

// MatchRepeat tiles bases by windows of len(rotations[0]), summing each
// window's MatchUnits score; the final, possibly partial, window is scored
// against the same rotations (spec.md §4.3).
func MatchRepeat(rotations []string, bases, quals string, minBaseQ int) float64 {
	unitLen := len(rotations[0])
	score := 0.0
	pos := 0
	for pos+unitLen <= len(bases) {
		score += MatchUnits(rotations, bases[pos:pos+unitLen], quals[pos:pos+unitLen], minBaseQ)
		pos += unitLen
	}
	if pos != len(bases) {
		score += matchPartialWindow(rotations, bases[pos:], quals[pos:], minBaseQ)
	}
	return score
}

// matchPartialWindow scores a final, shorter-than-unit window by truncating
// each rotation to the window's length before scoring.
func matchPartialWindow(rotations []string, bases, quals string, minBaseQ int) float64 {
	truncated := make([]string, len(rotations))
	for i, r := range rotations {
		truncated[i] = r[:len(bases)]
	}
	return MatchUnits(truncated, bases, quals, minBaseQ)
}

// MatchRepeatRC returns the max of MatchRepeat on the forward strand and on
// the reverse complement (bases reverse-complemented, qualities reversed),
// per spec.md §4.3.
func MatchRepeatRC(rotations []string, bases, quals string, minBaseQ int) float64 {
	forward := MatchRepeat(rotations, bases, quals, minBaseQ)

	rcBases := ReverseComplement(bases)
	rcQuals := reverseString(quals)
	reverse := MatchRepeat(rotations, rcBases, rcQuals, minBaseQ)

	if reverse > forward {
		return reverse
	}
	return forward
}

func reverseString(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = s[i]
	}
	return string(out)
}

// DefaultMinIRRPurity is the per-base purity threshold a read must clear to
// be called an IRR (spec.md §4.3).
const DefaultMinIRRPurity = 0.90

// DefaultMinIRRMatchFrequency is f_min used for IRR detection (spec.md
// §4.4's call into C2).
const DefaultMinIRRMatchFrequency = 0.8

// IsInRepeatRead implements IsInrepeatRead (spec.md §4.3/§4.4): find the
// canonical motif via CanonicalMotifFromRead, then require per-base purity
// (MatchRepeatRC / len(bases)) >= DefaultMinIRRPurity. Returns the
// canonical motif and whether the read is an IRR.
func IsInRepeatRead(bases, quals string, sizeRange SizeRange) (motif string, isIRR bool) {
	motif = CanonicalMotifFromRead(DefaultMinIRRMatchFrequency, bases, sizeRange)
	if motif == "" || motif == "N" {
		return motif, false
	}

	rotations := Rotations(motif)
	score := MatchRepeatRC(rotations, bases, quals, DefaultMinBaseQuality) / float64(len(bases))
	return motif, score >= DefaultMinIRRPurity
}
