package repeatscan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func highQuals(n int) string {
	return strings.Repeat(string(rune(baseQualityOffset+40)), n)
}

func TestRotations(t *testing.T) {
	assert.Equal(t, []string{"CGG", "GGC", "GCG"}, Rotations("CGG"))
	assert.Equal(t, []string{"CCC", "CCC", "CCC"}, Rotations("CCC"))
}

func TestMatchUnitsPerfectMatch(t *testing.T) {
	rotations := Rotations("CGG")
	score := MatchUnits(rotations, "CGG", highQuals(3), DefaultMinBaseQuality)
	assert.Equal(t, 3.0, score)
}

func TestMatchUnitsPicksBestRotation(t *testing.T) {
	rotations := Rotations("CGG")
	// "GGC" is itself a rotation of CGG, so it should score a perfect match.
	score := MatchUnits(rotations, "GGC", highQuals(3), DefaultMinBaseQuality)
	assert.Equal(t, 3.0, score)
}

func TestMatchRepeatTilesWindows(t *testing.T) {
	rotations := Rotations("CGG")
	score := MatchRepeat(rotations, "CGGCGGCGG", highQuals(9), DefaultMinBaseQuality)
	assert.Equal(t, 9.0, score)
}

func TestMatchRepeatPartialFinalWindow(t *testing.T) {
	rotations := Rotations("CGG")
	// Nine perfect bases plus a two-base partial window that also matches.
	score := MatchRepeat(rotations, "CGGCGGCGGCG", highQuals(11), DefaultMinBaseQuality)
	assert.Equal(t, 11.0, score)
}

func TestMatchRepeatRCTakesBestStrand(t *testing.T) {
	rotations := Rotations("AAC")
	// The reverse complement of AACAACAAC is GTTGTTGTT, a perfect repeat of
	// GTT rather than AAC, so the forward strand scores higher here; this
	// exercises that MatchRepeatRC picks the max of the two.
	forwardOnly := MatchRepeat(rotations, "AACAACAAC", highQuals(9), DefaultMinBaseQuality)
	rc := MatchRepeatRC(rotations, "AACAACAAC", highQuals(9), DefaultMinBaseQuality)
	assert.Equal(t, forwardOnly, rc)
}

func TestIsInRepeatReadDetectsCleanIRR(t *testing.T) {
	bases := strings.Repeat("CGG", 10)
	motif, isIRR := IsInRepeatRead(bases, highQuals(len(bases)), DefaultSizeRange)
	assert.True(t, isIRR)
	assert.Equal(t, "CCG", motif)
}

func TestIsInRepeatReadHomopolymer(t *testing.T) {
	bases := strings.Repeat("C", 7)
	motif, isIRR := IsInRepeatRead(bases, highQuals(len(bases)), DefaultSizeRange)
	assert.True(t, isIRR)
	assert.Equal(t, "C", motif)
}

func TestIsInRepeatReadAllNNeverIRR(t *testing.T) {
	bases := strings.Repeat("N", 20)
	_, isIRR := IsInRepeatRead(bases, highQuals(len(bases)), DefaultSizeRange)
	assert.False(t, isIRR)
}

func TestIsInRepeatReadRejectsNonRepetitiveSequence(t *testing.T) {
	bases := "ACGTGATCGATCGTAGCTAGCTGATCGATCGATCGATGC"
	_, isIRR := IsInRepeatRead(bases, highQuals(len(bases)), DefaultSizeRange)
	assert.False(t, isIRR)
}
