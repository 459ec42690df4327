package region

// CountFeature is a scalar count. New anchor/IRR observations start with a
// count of 1; merging sums counts.
type CountFeature int

// Combine implements Feature.
func (c CountFeature) Combine(other Feature) Feature {
	return c + other.(CountFeature)
}

// Value returns the underlying count.
func (c CountFeature) Value() int { return int(c) }

// SampleCountFeature is a per-sample count map, used by the multisample
// merge (C9) in place of CountFeature. Merging combines both maps key-wise.
type SampleCountFeature map[string]int

// Combine implements Feature. It returns a new map so that the receiver and
// argument are left untouched; callers that want to mutate in place should
// discard the old value and keep the returned one, matching how
// sortAndMerge uses it.
func (c SampleCountFeature) Combine(other Feature) Feature {
	out := make(SampleCountFeature, len(c))
	for sample, count := range c {
		out[sample] = count
	}
	for sample, count := range other.(SampleCountFeature) {
		out[sample] += count
	}
	return out
}

// NewSampleCount builds a single-sample countable region value.
func NewSampleCount(sampleID string, count int) SampleCountFeature {
	return SampleCountFeature{sampleID: count}
}

// NewSampleRegion builds a sample-countable region (spec.md §3).
func NewSampleRegion(contigID int, start, end int64, sampleID string, count int) Region {
	return Region{ContigID: contigID, Start: start, End: end, Value: NewSampleCount(sampleID, count)}
}
