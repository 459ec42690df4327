package repeatscan

// Unaligned is the ContigID/MateContigID sentinel for an unplaced read,
// matching region.Unaligned.
const Unaligned = -1

// Flag bits recognized on a Read (spec.md §6). Only the bits the core
// inspects are named; the source stream may carry others but the core
// never looks at them.
const (
	FlagUnmapped      = 0x4
	FlagSecondary     = 0x100
	FlagSupplementary = 0x800
)

// Read is the opaque per-record view the core consumes (spec.md §3 "Read
// record", §6 "Record stream"). It is produced by an external, out-of-scope
// decoder (see encoding/htsreader) and dropped after classification and
// pairing.
type Read struct {
	Name         string
	Bases        string
	Quals        string
	ContigID     int // -1 if unaligned
	Pos          int64
	MateContigID int
	MatePos      int64
	Mapq         int
	Flags        int
	ReadLen      int
}

// Unmapped reports whether the read's unmapped flag bit is set.
func (r Read) Unmapped() bool { return r.Flags&FlagUnmapped != 0 }

// RecordStream is the external record stream interface spec.md §6
// describes: an iterator producing one record per primary alignment until
// exhausted. Secondary and supplementary alignments must already have been
// filtered out by the implementation.
type RecordStream interface {
	// Next advances to the next primary alignment. It returns false once
	// the stream is exhausted (with Err reporting any failure), or true if
	// a record is available via Record.
	Next() bool
	// Record returns the current primary-alignment record. Only valid
	// after a call to Next that returned true.
	Record() Read
	// Err returns the first error encountered by Next, if any.
	Err() error
}
