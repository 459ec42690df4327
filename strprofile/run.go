// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package strprofile

import (
	"context"
	"io"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/strdenovo/matecache"
	"github.com/grailbio/strdenovo/refcontig"
	"github.com/grailbio/strdenovo/region"
	"github.com/grailbio/strdenovo/repeatscan"
	"github.com/grailbio/strdenovo/runstats"
)

// progressInterval matches the original driver's spdlog progress cadence
// (spec.md §6 Supplemented Features).
const progressInterval = 1000000

// Config bundles C8's configuration surface (spec.md §6 table).
type Config struct {
	MinMotifLength int // default 2
	MaxMotifLength int // default 20
	MinAnchorMapq  int // default 50
	MaxIRRMapq     int // default 40
	EnablePairLog  bool
	GzipProfile    bool // gzip-compress P.str_profile.json
}

// DefaultConfig returns spec.md §6's documented defaults.
func DefaultConfig() Config {
	return Config{MinMotifLength: 2, MaxMotifLength: 20, MinAnchorMapq: 50, MaxIRRMapq: 40}
}

func (c Config) motifFilterRange() repeatscan.SizeRange {
	return repeatscan.SizeRange{Lo: c.MinMotifLength, Hi: c.MaxMotifLength}
}

// Run implements C8's end-to-end sweep (spec.md §4.8): classify and pair
// every primary alignment in stream, finalize stats, merge anchor regions
// per motif, and write the three output files rooted at outPrefix.
func Run(ctx context.Context, stream repeatscan.RecordStream, contigs *refcontig.Table, outPrefix string, cfg Config) (err error) {
	stats := runstats.NewCalculator()
	collector := matecache.NewCollector(contigs)

	if cfg.EnablePairLog {
		logDst, cerr := file.Create(ctx, outPrefix+".pairs.tsv.snappy")
		if cerr != nil {
			return errors.E(cerr, "strprofile: creating pair log")
		}
		if cerr := collector.EnableReadLogging(writeCloser{Writer: logDst.Writer(ctx), ctx: ctx, closer: logDst}); cerr != nil {
			return errors.E(cerr, "strprofile: enabling pair log")
		}
	}
	defer func() {
		if cerr := collector.Close(); cerr != nil && err == nil {
			err = errors.E(cerr, "strprofile: closing pair log")
		}
	}()

	classifyParams := repeatscan.ClassifyParams{
		SizeRange:     repeatscan.DefaultSizeRange,
		MaxIRRMapq:    cfg.MaxIRRMapq,
		MinAnchorMapq: cfg.MinAnchorMapq,
	}

	var nInspected int64
	for stream.Next() {
		r := stream.Record()
		stats.Inspect(r.ContigID, r.ReadLen)

		readType, motif := repeatscan.ClassifyRead(classifyParams, r)
		switch readType {
		case repeatscan.IRRRead:
			collector.AddIRR(matecache.IRRRead{Name: r.Name, ContigID: r.ContigID, Pos: r.Pos, Motif: motif})
		case repeatscan.AnchorRead:
			collector.AddAnchor(matecache.AnchorRead{Name: r.Name, ContigID: r.ContigID, Pos: r.Pos})
		default:
			collector.AddOther(matecache.OtherRead{Name: r.Name, ContigID: r.ContigID, Pos: r.Pos})
		}

		nInspected++
		if nInspected%progressInterval == 0 {
			log.Debug.Printf("strprofile: inspected %d reads", nInspected)
		}
	}
	if err := stream.Err(); err != nil {
		return errors.E(err, "strprofile: reading record stream")
	}
	if nInspected == 0 {
		return errors.E(errors.Precondition, "strprofile: zero primary alignments inspected")
	}

	estimate, err := stats.Finalize(func(contigID int) int64 {
		if contigID < 0 || contigID >= contigs.NumContigs() {
			return 0
		}
		return contigs.Size(contigID)
	})
	if err != nil {
		return errors.E(err, "strprofile: finalizing run stats")
	}
	log.Info.Printf("strprofile: %d reads, mean read length %d, depth %.2f", nInspected, estimate.MeanReadLength, estimate.Depth)
	log.Debug.Printf("strprofile: %s", collector.Stats())

	filterRange := cfg.motifFilterRange()
	doc := Document{ReadLength: estimate.MeanReadLength, Depth: estimate.Depth, Motifs: make(map[string]*MotifProfile)}
	var loci []locusRow
	var motifRows []motifRow

	anchorRegions := collector.AnchorRegions()
	irrRegions := collector.IRRRegions()
	motifs := unionMotifKeys(anchorRegions, irrRegions)
	sort.Strings(motifs)
	for _, motif := range motifs {
		if !filterRange.Contains(len(motif)) {
			continue
		}
		mergedAnchors := region.SortAndMerge(anchorRegions[motif], region.MaxMergeDistance)
		nAnchors := len(anchorRegions[motif])
		nIrrs := len(irrRegions[motif])
		irrPairCount := (nIrrs - nAnchors) / 2

		mp := &MotifProfile{RepeatUnit: motif, AnchoredIrrCount: nAnchors, IrrPairCount: irrPairCount}
		if len(mergedAnchors) > 0 {
			mp.Regions = make(map[string]int, len(mergedAnchors))
			for _, r := range mergedAnchors {
				encoding := region.Encode(r, contigs)
				count := r.Value.(region.CountFeature).Value()
				mp.Regions[encoding] = count

				if r.ContigID == region.Unaligned {
					continue
				}
				loci = append(loci, locusRow{
					contig: contigs.Name(r.ContigID), start: r.Start, end: r.End, motif: motif,
					numAncIrrs: count,
					normNumAncIrrs: float64(count) * 30.0 / estimate.Depth,
					hetSTRSize: hetSTRSize(estimate.MeanReadLength, int64(count), estimate.Depth, len(motif)),
				})
			}
		}
		doc.Motifs[motif] = mp

		if irrPairCount > 0 {
			motifRows = append(motifRows, motifRow{
				motif: motif, numPairedIrrs: irrPairCount,
				normNumPairedIrrs: float64(irrPairCount) * 30.0 / estimate.Depth,
			})
		}
	}

	if err := writeProfileJSON(ctx, outPrefix+".str_profile.json", doc, cfg.GzipProfile); err != nil {
		return err
	}
	if err := writeLocusTSV(ctx, outPrefix+".locus.tsv", loci); err != nil {
		return err
	}
	if err := writeMotifTSV(ctx, outPrefix+".motif.tsv", motifRows); err != nil {
		return err
	}
	return nil
}

// hetSTRSize computes floor((readLength + (numIrrs*readLength)/(depth/2)) /
// motifLength), spec.md §4.8.
func hetSTRSize(readLength, numIrrs int64, depth float64, motifLength int) int64 {
	numerator := float64(readLength) + float64(numIrrs)*float64(readLength)/(depth/2.0)
	return int64(numerator) / int64(motifLength)
}

// unionMotifKeys returns the distinct motif keys present in either a or b.
// The caller sorts the result before iterating so that locus.tsv and
// motif.tsv rows come out in the same order across runs over identical
// input, rather than following Go's unspecified map iteration order.
func unionMotifKeys(a, b map[string][]region.Region) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for k := range a {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	for k := range b {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// writeCloser pairs a file.File's io.Writer view with the file.File's own
// Close, since file.File.Writer(ctx) returns a plain io.Writer and
// file.File.Close takes a context that this io.Closer shape has nowhere
// to carry.
type writeCloser struct {
	io.Writer
	ctx    context.Context
	closer file.File
}

func (wc writeCloser) Close() error { return wc.closer.Close(wc.ctx) }
