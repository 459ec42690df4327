package matecache

import (
	"io"

	"github.com/golang/snappy"
	"github.com/grailbio/base/tsv"
)

// pairLog is the optional per-pair TSV stream (spec.md §4.5): snappy
// compressed, the same way encoding/bampair/disk_mate_shard.go wraps its
// on-disk mate shards.
type pairLog struct {
	dst    io.WriteCloser
	snappy *snappy.Writer
	tsv    *tsv.Writer
}

func newPairLog(dst io.WriteCloser) *pairLog {
	sw := snappy.NewBufferedWriter(dst)
	return &pairLog{dst: dst, snappy: sw, tsv: tsv.NewWriter(sw)}
}

func (p *pairLog) writeHeader() error {
	p.tsv.WriteString("pair_type")
	p.tsv.WriteString("motif")
	p.tsv.WriteString("role")
	p.tsv.WriteString("pos")
	p.tsv.WriteString("mate_role")
	p.tsv.WriteString("mate_pos")
	p.tsv.WriteString("fragment_name")
	return p.tsv.EndLine()
}

func (p *pairLog) writeRow(pairType, motif, role, pos, mateRole, matePos, fragmentName string) {
	p.tsv.WriteString(pairType)
	p.tsv.WriteString(motif)
	p.tsv.WriteString(role)
	p.tsv.WriteString(pos)
	p.tsv.WriteString(mateRole)
	p.tsv.WriteString(matePos)
	p.tsv.WriteString(fragmentName)
	// A single malformed row is not worth failing the whole sweep over; the
	// pair log is diagnostic, not load-bearing (spec.md §4.5 "optional").
	_ = p.tsv.EndLine()
}

func (p *pairLog) close() error {
	if err := p.tsv.Flush(); err != nil {
		return err
	}
	if err := p.snappy.Close(); err != nil {
		return err
	}
	return p.dst.Close()
}
