package repeatscan

// ReadType is a read's classification per C4 (spec.md §4.4).
type ReadType int

const (
	// OtherRead is neither an IRR nor a confident anchor.
	OtherRead ReadType = iota
	// IRRRead is a read whose bases are almost entirely a tandem
	// repetition of some canonical motif.
	IRRRead
	// AnchorRead is a confidently mapped read (mapq >= minAnchorMapq).
	AnchorRead
)

// ClassifyParams bundles the configuration C4 needs (spec.md §4.4, §6).
type ClassifyParams struct {
	SizeRange     SizeRange
	MaxIRRMapq    int // reads with mapq <= this are IRR candidates
	MinAnchorMapq int
}

// ClassifyRead implements C4's classifyRead: a read is an IRR candidate iff
// it is unmapped or has mapq <= MaxIRRMapq; if it passes IRR detection it is
// an IRRRead (with its canonical motif). Otherwise it is an AnchorRead if
// mapq >= MinAnchorMapq, else OtherRead.
func ClassifyRead(p ClassifyParams, r Read) (ReadType, string) {
	isCandidate := r.Unmapped() || r.Mapq <= p.MaxIRRMapq
	if isCandidate {
		if motif, ok := IsInRepeatRead(r.Bases, r.Quals, p.SizeRange); ok {
			return IRRRead, motif
		}
	}

	if r.Mapq >= p.MinAnchorMapq {
		return AnchorRead, ""
	}
	return OtherRead, ""
}

// PairType is the classification of a mated pair of reads (spec.md §4.4).
type PairType int

const (
	// OtherPair is any combination that isn't an IRR-anchor or IRR-IRR
	// pair.
	OtherPair PairType = iota
	// IRRAnchorPair is exactly one mate IRR, the other a confident anchor.
	IRRAnchorPair
	// IRRIRRPair is both mates IRR with the same canonical motif.
	IRRIRRPair
)

// ClassifyPair implements C4's classifyPair. It is symmetric:
// ClassifyPair(a, aUnit, b, bUnit) == ClassifyPair(b, bUnit, a, aUnit).
func ClassifyPair(readType ReadType, readUnit string, mateType ReadType, mateUnit string) PairType {
	if (readType == AnchorRead && mateType == IRRRead) || (readType == IRRRead && mateType == AnchorRead) {
		return IRRAnchorPair
	}
	if readType == IRRRead && mateType == IRRRead && readUnit == mateUnit {
		return IRRIRRPair
	}
	return OtherPair
}
