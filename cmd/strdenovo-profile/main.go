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

/*
strdenovo-profile computes a single-sample short tandem repeat (STR)
profile from an aligned BAM/SAM file: the number and position of reads
bearing an in-repeat motif, aggregated into a profile document, locus
table, and motif table.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/strdenovo/encoding/htsreader"
	"github.com/grailbio/strdenovo/encoding/refidx"
	"github.com/grailbio/strdenovo/strprofile"
)

var (
	readsPath     = flag.String("reads", "", "Input BAM/SAM path (required)")
	referencePath = flag.String("reference-index", "", "Reference .fai index path (required)")
	outPrefix     = flag.String("out", "", "Output path prefix (required)")
	minMotifLen   = flag.Int("min-motif-length", 2, "Minimum canonical motif length")
	maxMotifLen   = flag.Int("max-motif-length", 20, "Maximum canonical motif length")
	minAnchorMapq = flag.Int("min-anchor-mapq", 50, "Minimum MAPQ for a read to count as a confident anchor")
	maxIrrMapq    = flag.Int("max-irr-mapq", 40, "Maximum MAPQ for a read to be considered an in-repeat-read candidate")
	enablePairLog = flag.Bool("enable-pair-log", false, "Write a side log of every anchor/IRR pair observed")
	gzipProfile   = flag.Bool("gzip-profile", false, "Gzip-compress the profile JSON document")
)

func strdenovoProfileUsage() {
	fmt.Printf("Usage: %s -reads <path> -reference-index <path> -out <prefix> [OPTIONS]\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = strdenovoProfileUsage
	shutdown := grail.Init()
	defer shutdown()
	flag.Parse()

	if *readsPath == "" || *referencePath == "" || *outPrefix == "" {
		log.Fatalf("-reads, -reference-index, and -out are all required")
	}
	if *minMotifLen <= 0 || *maxMotifLen < *minMotifLen {
		log.Fatalf("invalid motif length range [%d, %d]", *minMotifLen, *maxMotifLen)
	}

	ctx := vcontext.Background()

	refSrc, err := file.Open(ctx, *referencePath)
	if err != nil {
		log.Panicf("%v", errors.E(err, "opening reference index", *referencePath))
	}
	contigs, err := refidx.Parse(refSrc.Reader(ctx))
	if err != nil {
		log.Panicf("%v", err)
	}
	if err := refSrc.Close(ctx); err != nil {
		log.Panicf("%v", errors.E(err, "closing reference index", *referencePath))
	}

	readsSrc, err := file.Open(ctx, *readsPath)
	if err != nil {
		log.Panicf("%v", errors.E(err, "opening reads", *readsPath))
	}
	defer file.CloseAndReport(ctx, readsSrc, &err)

	// The .fai index, not the BAM header's own dictionary, is authoritative
	// for contig ids here (spec.md §6), so the reader's own table is unused.
	stream, _, err := htsreader.NewReader(readsSrc.Reader(ctx))
	if err != nil {
		log.Panicf("%v", err)
	}

	cfg := strprofile.Config{
		MinMotifLength: *minMotifLen,
		MaxMotifLength: *maxMotifLen,
		MinAnchorMapq:  *minAnchorMapq,
		MaxIRRMapq:     *maxIrrMapq,
		EnablePairLog:  *enablePairLog,
		GzipProfile:    *gzipProfile,
	}
	if err := strprofile.Run(ctx, stream, contigs, *outPrefix, cfg); err != nil {
		log.Panicf("%v", err)
	}
	log.Debug.Printf("exiting")
}
