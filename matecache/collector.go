package matecache

import (
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/strdenovo/refcontig"
	"github.com/grailbio/strdenovo/region"
)

// Collector is C5's pair collector (spec.md §4.5): it owns the unpaired
// cache and the two per-motif region lists (anchorRegions, irrRegions) that
// feed the region aggregator (C6).
type Collector struct {
	cache         *Cache
	anchorRegions map[string][]region.Region
	irrRegions    map[string][]region.Region
	contigs       *refcontig.Table
	log           *pairLog
}

// NewCollector builds an empty collector. contigs is used only to resolve
// contig names for the optional pair log.
func NewCollector(contigs *refcontig.Table) *Collector {
	return &Collector{
		cache:         NewCache(),
		anchorRegions: make(map[string][]region.Region),
		irrRegions:    make(map[string][]region.Region),
		contigs:       contigs,
	}
}

// EnableReadLogging turns on the optional per-pair TSV log (spec.md §4.5).
// It may only be called once.
func (c *Collector) EnableReadLogging(w io.WriteCloser) error {
	if c.log != nil {
		return fmt.Errorf("read logging cannot be enabled twice")
	}
	c.log = newPairLog(w)
	return c.log.writeHeader()
}

// Close flushes and closes the optional pair log, if enabled.
func (c *Collector) Close() error {
	if c.log == nil {
		return nil
	}
	return c.log.close()
}

// AnchorRegions returns the accumulated anchor regions, keyed by canonical
// motif.
func (c *Collector) AnchorRegions() map[string][]region.Region { return c.anchorRegions }

// IRRRegions returns the accumulated IRR regions, keyed by canonical motif.
func (c *Collector) IRRRegions() map[string][]region.Region { return c.irrRegions }

// AddAnchor implements addAnchor (spec.md §4.5): if the mate is cached as
// IRR, stage an anchored-IRR pair and evict. If cached as anything else,
// just evict. Otherwise cache this read as an anchor.
func (c *Collector) AddAnchor(r AnchorRead) {
	mate, cached := c.cache.take(r.Name)
	if !cached {
		c.cache.put(r.Name, cacheEntry{kind: kindAnchor, contigID: r.ContigID, pos: r.Pos})
		return
	}

	if mate.kind == kindIRR {
		irrRegion := region.New(mate.contigID, mate.pos, mate.pos+1)
		anchorRegion := region.New(r.ContigID, r.Pos, r.Pos+1)
		c.irrRegions[mate.motif] = append(c.irrRegions[mate.motif], irrRegion)
		c.anchorRegions[mate.motif] = append(c.anchorRegions[mate.motif], anchorRegion)
		c.logAnchoredIRR(r.Name, mate.motif, irrRegion, anchorRegion)
	}
}

// AddIRR implements addIrr (spec.md §4.5).
func (c *Collector) AddIRR(r IRRRead) {
	mate, cached := c.cache.take(r.Name)
	if !cached {
		c.cache.put(r.Name, cacheEntry{kind: kindIRR, contigID: r.ContigID, pos: r.Pos, motif: r.Motif})
		return
	}

	switch mate.kind {
	case kindIRR:
		readRegion := region.New(r.ContigID, r.Pos, r.Pos+1)
		mateRegion := region.New(mate.contigID, mate.pos, mate.pos+1)
		c.logIRRPair(r.Name, readRegion, r.Motif, mateRegion, mate.motif)
		if r.Motif == mate.motif {
			c.irrRegions[r.Motif] = append(c.irrRegions[r.Motif], readRegion, mateRegion)
		}
	case kindAnchor:
		irrRegion := region.New(r.ContigID, r.Pos, r.Pos+1)
		anchorRegion := region.New(mate.contigID, mate.pos, mate.pos+1)
		c.irrRegions[r.Motif] = append(c.irrRegions[r.Motif], irrRegion)
		c.anchorRegions[r.Motif] = append(c.anchorRegions[r.Motif], anchorRegion)
		c.logAnchoredIRR(r.Name, r.Motif, irrRegion, anchorRegion)
	}
}

// AddOther implements addOtherRead (spec.md §4.5): evict if cached,
// otherwise cache as other.
func (c *Collector) AddOther(r OtherRead) {
	if _, cached := c.cache.take(r.Name); !cached {
		c.cache.put(r.Name, cacheEntry{kind: kindOther, contigID: r.ContigID, pos: r.Pos})
	}
}

// Stats renders a short human-readable summary, the Go analogue of
// PairCollector::PrintStats/ReadCache::printStats in the original
// implementation (spec.md §6 supplemented features).
func (c *Collector) Stats() string {
	return fmt.Sprintf(
		"matecache.Collector(%d anchor motifs, %d irr motifs, %s)",
		len(c.anchorRegions), len(c.irrRegions), c.cache,
	)
}

// AnchorRead, IRRRead and OtherRead are the minimal per-classification
// views Collector needs; strprofile constructs these from a
// repeatscan.Read plus its ClassifyRead result.
type AnchorRead struct {
	Name     string
	ContigID int
	Pos      int64
}

type IRRRead struct {
	Name     string
	ContigID int
	Pos      int64
	Motif    string
}

type OtherRead struct {
	Name     string
	ContigID int
	Pos      int64
}

func (c *Collector) logAnchoredIRR(fragName, motif string, irrRegion, anchorRegion region.Region) {
	if c.log == nil {
		return
	}
	c.log.writeRow("anchored_irr", motif, "irr", c.encode(irrRegion), "anchor", c.encode(anchorRegion), fragName)
}

func (c *Collector) logIRRPair(fragName string, readRegion region.Region, readMotif string, mateRegion region.Region, mateMotif string) {
	if c.log == nil {
		return
	}
	motifCol := readMotif
	firstRegion, secondRegion := readRegion, mateRegion
	if readMotif != mateMotif {
		motifCol = readMotif + "_" + mateMotif
		if mateMotif < readMotif {
			motifCol = mateMotif + "_" + readMotif
			firstRegion, secondRegion = mateRegion, readRegion
		}
	}
	c.log.writeRow("irr_pair", motifCol, "irr", c.encode(firstRegion), "irr", c.encode(secondRegion), fragName)
}

func (c *Collector) encode(r region.Region) string {
	if c.contigs == nil {
		return strconv.Itoa(r.ContigID) + ":" + strconv.FormatInt(r.Start, 10) + "-" + strconv.FormatInt(r.End, 10)
	}
	return region.Encode(r, c.contigs)
}
