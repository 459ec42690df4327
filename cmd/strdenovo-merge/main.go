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
strdenovo-merge combines many single-sample STR profile documents (see
strdenovo-profile) into one cohort-level multisample profile, driven by a
manifest of (sample, case/control status, profile path) lines.
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
	"github.com/grailbio/strdenovo/encoding/refidx"
	"github.com/grailbio/strdenovo/repeatscan"
	"github.com/grailbio/strdenovo/strmerge"
)

var (
	manifestPath  = flag.String("manifest", "", "Manifest TSV: sample\\tstatus\\tpath (required)")
	referencePath = flag.String("reference-index", "", "Reference .fai index path (required)")
	outPath       = flag.String("out", "", "Output path for the multisample profile document (required)")
	minMotifLen   = flag.Int("min-motif-length", 2, "Minimum canonical motif length")
	maxMotifLen   = flag.Int("max-motif-length", 20, "Maximum canonical motif length")
)

func strdenovoMergeUsage() {
	fmt.Printf("Usage: %s -manifest <path> -reference-index <path> -out <path> [OPTIONS]\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = strdenovoMergeUsage
	shutdown := grail.Init()
	defer shutdown()
	flag.Parse()

	if *manifestPath == "" || *referencePath == "" || *outPath == "" {
		log.Fatalf("-manifest, -reference-index, and -out are all required")
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

	motifRange := repeatscan.SizeRange{Lo: *minMotifLen, Hi: *maxMotifLen}
	if err := strmerge.Run(ctx, *manifestPath, contigs, motifRange, *outPath); err != nil {
		log.Panicf("%v", err)
	}
	log.Debug.Printf("exiting")
}
