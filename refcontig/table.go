// Package refcontig holds the reference contig name/length table: the
// metadata service spec.md §1 calls out as an external collaborator (FASTA
// index access for contig name<->id mapping). The core consumes it only
// through Table's narrow lookup API.
package refcontig

import "strings"

// Table maps contig names to 0-based ids and sizes, the same role
// ReferenceContigInfo plays in the original implementation. Both the
// "chr"-prefixed and unprefixed spelling of every contig name are indexed
// at construction time (spec.md §9 design note), so the lookup's hot path
// never allocates a variant string.
type Table struct {
	names []string
	sizes []int64
	index map[string]int
}

// NewTable builds a Table from an ordered list of (name, size) pairs. Order
// defines the contig ids: the first pair is contig 0, and so on.
func NewTable(namesAndSizes []NameSize) *Table {
	t := &Table{
		names: make([]string, len(namesAndSizes)),
		sizes: make([]int64, len(namesAndSizes)),
		index: make(map[string]int, len(namesAndSizes)*2),
	}
	for i, ns := range namesAndSizes {
		t.names[i] = ns.Name
		t.sizes[i] = ns.Size
		t.index[ns.Name] = i
		if alt := altName(ns.Name); alt != ns.Name {
			if _, exists := t.index[alt]; !exists {
				t.index[alt] = i
			}
		}
	}
	return t
}

// NameSize is one reference contig's name and length, as read from a FASTA
// index sidecar.
type NameSize struct {
	Name string
	Size int64
}

// altName strips a "chr" prefix from a contig name that has one, or adds
// one to a name that doesn't, mirroring ReferenceContigInfo's single-retry
// tolerance (spec.md §4.9, §9).
func altName(name string) string {
	if strings.HasPrefix(name, "chr") && len(name) > len("chr") {
		return name[len("chr"):]
	}
	return "chr" + name
}

// NumContigs returns the number of contigs in the table.
func (t *Table) NumContigs() int { return len(t.names) }

// Name returns the canonical name stored for contigID. It panics on an
// out-of-range id: contig ids in this package are only ever produced by ID
// or by decoding trusted region encodings, so an invalid id is a
// programmer error, not user input.
func (t *Table) Name(contigID int) string {
	t.assertValid(contigID)
	return t.names[contigID]
}

// Size returns the contig length stored for contigID.
func (t *Table) Size(contigID int) int64 {
	t.assertValid(contigID)
	return t.sizes[contigID]
}

// ID resolves a contig name to its id, retrying once with the "chr" prefix
// added or removed if the exact name isn't found.
func (t *Table) ID(name string) (int, bool) {
	if id, ok := t.index[name]; ok {
		return id, true
	}
	id, ok := t.index[altName(name)]
	return id, ok
}

func (t *Table) assertValid(contigID int) {
	if contigID < 0 || contigID >= len(t.names) {
		panic("refcontig: invalid contig id")
	}
}
