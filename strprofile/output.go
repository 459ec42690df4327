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
	"encoding/json"
	"io"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"
)

type locusRow struct {
	contig         string
	start, end     int64
	motif          string
	numAncIrrs     int
	normNumAncIrrs float64
	hetSTRSize     int64
}

type motifRow struct {
	motif             string
	numPairedIrrs     int
	normNumPairedIrrs float64
}

// writeProfileJSON emits P.str_profile.json, spec.md §6: UTF-8, 4-space
// indent, matching the original's nlohmann::json dump(4). When gzip is
// true the file is written gzip-compressed (mirroring interval/bedunion.go's
// use of klauspost/compress/gzip for compressed artifacts) and ".gz" is
// appended to path.
func writeProfileJSON(ctx context.Context, path string, doc Document, gzipCompress bool) (err error) {
	encoded, jerr := json.MarshalIndent(doc, "", "    ")
	if jerr != nil {
		return errors.E(jerr, "strprofile: encoding profile document")
	}

	if gzipCompress {
		path += ".gz"
	}
	dst, cerr := file.Create(ctx, path)
	if cerr != nil {
		return errors.E(cerr, "strprofile: creating profile document", path)
	}
	defer file.CloseAndReport(ctx, dst, &err)

	var w io.Writer = dst.Writer(ctx)
	if gzipCompress {
		gz := gzip.NewWriter(w)
		defer func() {
			if cerr := gz.Close(); cerr != nil && err == nil {
				err = errors.E(cerr, "strprofile: closing gzip profile document", path)
			}
		}()
		w = gz
	}

	if _, werr := w.Write(encoded); werr != nil {
		return errors.E(werr, "strprofile: writing profile document", path)
	}
	return nil
}

// writeLocusTSV emits P.locus.tsv, spec.md §6.
func writeLocusTSV(ctx context.Context, path string, rows []locusRow) (err error) {
	dst, cerr := file.Create(ctx, path)
	if cerr != nil {
		return errors.E(cerr, "strprofile: creating locus table", path)
	}
	defer file.CloseAndReport(ctx, dst, &err)

	w := tsv.NewWriter(dst.Writer(ctx))
	w.WriteString("contig")
	w.WriteString("start")
	w.WriteString("end")
	w.WriteString("motif")
	w.WriteString("num_anc_irrs")
	w.WriteString("norm_num_anc_irrs")
	w.WriteString("het_str_size")
	if err = w.EndLine(); err != nil {
		return errors.E(err, "strprofile: writing locus table header")
	}

	for _, row := range rows {
		w.WriteString(row.contig)
		w.WriteString(strconv.FormatInt(row.start, 10))
		w.WriteString(strconv.FormatInt(row.end, 10))
		w.WriteString(row.motif)
		w.WriteString(strconv.Itoa(row.numAncIrrs))
		w.WriteString(formatFloat2(row.normNumAncIrrs))
		w.WriteString(strconv.FormatInt(row.hetSTRSize, 10))
		if err = w.EndLine(); err != nil {
			return errors.E(err, "strprofile: writing locus table row")
		}
	}
	return w.Flush()
}

// writeMotifTSV emits P.motif.tsv, spec.md §6.
func writeMotifTSV(ctx context.Context, path string, rows []motifRow) (err error) {
	dst, cerr := file.Create(ctx, path)
	if cerr != nil {
		return errors.E(cerr, "strprofile: creating motif table", path)
	}
	defer file.CloseAndReport(ctx, dst, &err)

	w := tsv.NewWriter(dst.Writer(ctx))
	w.WriteString("motif")
	w.WriteString("num_paired_irrs")
	w.WriteString("norm_num_paired_irrs")
	if err = w.EndLine(); err != nil {
		return errors.E(err, "strprofile: writing motif table header")
	}

	for _, row := range rows {
		w.WriteString(row.motif)
		w.WriteString(strconv.Itoa(row.numPairedIrrs))
		w.WriteString(formatFloat2(row.normNumPairedIrrs))
		if err = w.EndLine(); err != nil {
			return errors.E(err, "strprofile: writing motif table row")
		}
	}
	return w.Flush()
}

func formatFloat2(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
