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

package strmerge

import (
	"context"
	"encoding/json"
	"sort"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/strdenovo/refcontig"
	"github.com/grailbio/strdenovo/region"
	"github.com/grailbio/strdenovo/repeatscan"
	"github.com/grailbio/strdenovo/strprofile"
)

// normalizeEvery is the periodic-renormalization cadence (spec.md §4.9:
// "After every 50 samples").
const normalizeEvery = 50

// merger accumulates per-motif sample-countable regions and paired-IRR
// counts across a manifest's worth of samples.
type merger struct {
	contigs       *refcontig.Table
	motifRange    repeatscan.SizeRange
	anchorRegions map[string][]region.Region
	pairedCounts  map[string]map[string]int
	readLengths   map[string]int64
	depths        map[string]float64
}

// Run implements C9's driver (spec.md §4.9): load the manifest, merge every
// sample's profile in manifest order, periodically renormalizing, and
// write the multisample document to outPath.
func Run(ctx context.Context, manifestPath string, contigs *refcontig.Table, motifRange repeatscan.SizeRange, outPath string) (err error) {
	entries, err := LoadManifest(ctx, manifestPath)
	if err != nil {
		return err
	}

	m := &merger{
		contigs:       contigs,
		motifRange:    motifRange,
		anchorRegions: make(map[string][]region.Region),
		pairedCounts:  make(map[string]map[string]int),
		readLengths:   make(map[string]int64),
		depths:        make(map[string]float64),
	}

	// Parsing each manifest entry's profile JSON and decoding its region
	// strings is independent work, so it runs concurrently via
	// traverse.Each; the results are then folded into m sequentially, in
	// manifest order, so the periodic-normalization cadence below stays
	// deterministic regardless of how the loads interleave.
	loaded := make([]sampleData, len(entries))
	loadErr := traverse.Each(len(entries), func(i int) error {
		data, derr := loadSample(ctx, m.contigs, m.motifRange, entries[i])
		if derr != nil {
			return derr
		}
		loaded[i] = data
		return nil
	})
	if loadErr != nil {
		return loadErr
	}

	for i, data := range loaded {
		m.fold(data)
		if (i+1)%normalizeEvery == 0 {
			log.Debug.Printf("strmerge: renormalizing after %d samples", i+1)
			m.normalize()
		}
	}
	m.normalize()

	doc := m.document()
	return writeDocument(ctx, outPath, doc)
}

// sampleData is one sample's profile, already decoded and validated but
// not yet merged into any shared merger state -- the unit loadSample
// produces and fold consumes, so loading many samples concurrently never
// touches a merger's maps from more than one goroutine.
type sampleData struct {
	sample       string
	readLength   int64
	depth        float64
	regions      map[string][]region.Region
	pairedCounts map[string]map[string]int
}

func loadSample(ctx context.Context, contigs *refcontig.Table, motifRange repeatscan.SizeRange, entry ManifestEntry) (data sampleData, err error) {
	src, cerr := file.Open(ctx, entry.Path)
	if cerr != nil {
		return sampleData{}, errors.E(cerr, "strmerge: opening sample profile", entry.Sample, entry.Path)
	}
	defer file.CloseAndReport(ctx, src, &err)

	var doc strprofile.Document
	if derr := json.NewDecoder(src.Reader(ctx)).Decode(&doc); derr != nil {
		return sampleData{}, errors.E(derr, "strmerge: decoding sample profile", entry.Sample)
	}
	if doc.ReadLength <= 0 || doc.Depth <= 0 {
		return sampleData{}, errors.E(errors.Invalid, "strmerge: sample profile has sentinel ReadLength/Depth", entry.Sample)
	}

	data = sampleData{
		sample:       entry.Sample,
		readLength:   doc.ReadLength,
		depth:        doc.Depth,
		regions:      make(map[string][]region.Region),
		pairedCounts: make(map[string]map[string]int),
	}
	for motif, mp := range doc.Motifs {
		if !motifRange.Contains(len(motif)) {
			continue
		}
		for encoding, count := range mp.Regions {
			contigID, start, end, derr := region.Decode(contigs, encoding)
			if derr != nil {
				return sampleData{}, errors.E(derr, "strmerge: decoding region", entry.Sample, motif)
			}
			data.regions[motif] = append(data.regions[motif], region.NewSampleRegion(contigID, start, end, entry.Sample, count))
		}
		if mp.IrrPairCount > 0 {
			if data.pairedCounts[motif] == nil {
				data.pairedCounts[motif] = make(map[string]int)
			}
			data.pairedCounts[motif][entry.Sample] = mp.IrrPairCount
		}
	}
	return data, nil
}

// fold merges one already-loaded sample's data into the merger's shared
// per-motif state. Called sequentially, in manifest order, from Run.
func (m *merger) fold(data sampleData) {
	m.readLengths[data.sample] = data.readLength
	m.depths[data.sample] = data.depth
	for motif, regions := range data.regions {
		m.anchorRegions[motif] = append(m.anchorRegions[motif], regions...)
	}
	for motif, samples := range data.pairedCounts {
		if m.pairedCounts[motif] == nil {
			m.pairedCounts[motif] = make(map[string]int)
		}
		for sample, count := range samples {
			m.pairedCounts[motif][sample] = count
		}
	}
}

// normalizeShards is the number of farmhash buckets normalize partitions
// motifs into before handing shards to traverse.Each, the same fixed
// shard-count idiom fusion/kmer_index.go uses for its kmer->genelist map.
const normalizeShards = 16

// normalize runs sortAndMerge over every motif's region list, sharded by
// farmhash(motif) across workers (spec.md §4.9 step 3; DESIGN.md grounds
// this sharding on fusion/kmer_index.go's farmhash partitioning). Each
// worker writes only into its own slice slot in results, the same way
// kmer_index.go's shards are independent structs rather than one map
// touched by every goroutine; m.anchorRegions itself is only ever
// mutated after traverse.Each returns, back on the calling goroutine.
func (m *merger) normalize() {
	shards := make([][]string, normalizeShards)
	for motif := range m.anchorRegions {
		shard := farm.Hash64([]byte(motif)) % normalizeShards
		shards[shard] = append(shards[shard], motif)
	}
	for i := range shards {
		sort.Strings(shards[i])
	}

	results := make([]map[string][]region.Region, normalizeShards)
	_ = traverse.Each(normalizeShards, func(i int) error {
		merged := make(map[string][]region.Region, len(shards[i]))
		for _, motif := range shards[i] {
			merged[motif] = region.SortAndMerge(m.anchorRegions[motif], region.MaxMergeDistance)
		}
		results[i] = merged
		return nil
	})

	for _, merged := range results {
		for motif, regions := range merged {
			m.anchorRegions[motif] = regions
		}
	}
}

func (m *merger) document() Document {
	counts := make(map[string]*MotifCounts, len(m.anchorRegions)+len(m.pairedCounts))
	for motif, regions := range m.anchorRegions {
		mc := counts[motif]
		if mc == nil {
			mc = &MotifCounts{}
			counts[motif] = mc
		}
		mc.RegionsWithIrrAnchors = make(map[string]map[string]int, len(regions))
		for _, r := range regions {
			encoding := region.Encode(r, m.contigs)
			samples := r.Value.(region.SampleCountFeature)
			copied := make(map[string]int, len(samples))
			for sample, count := range samples {
				copied[sample] = count
			}
			mc.RegionsWithIrrAnchors[encoding] = copied
		}
	}
	for motif, samples := range m.pairedCounts {
		mc := counts[motif]
		if mc == nil {
			mc = &MotifCounts{}
			counts[motif] = mc
		}
		mc.IrrPairCounts = samples
	}

	return Document{
		Counts: counts,
		Parameters: Parameters{
			ReadLengths: m.readLengths,
			Depths:      m.depths,
		},
	}
}
