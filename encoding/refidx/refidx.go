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

// Package refidx parses a FASTA ".fai" sidecar (the samtools faidx format,
// http://www.htslib.org/doc/faidx.html) into a refcontig.Table, the same
// NAME/LENGTH/OFFSET/LINEBASES/LINEWIDTH five-column layout
// encoding/fasta/fasta_indexed.go's NewIndexed reads, but stripped down to
// the two columns the core actually needs (name, length).
package refidx

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	pkgerrors "github.com/pkg/errors"

	"github.com/grailbio/strdenovo/refcontig"
)

// Parse reads a ".fai" index stream and builds a refcontig.Table in file
// order (so contig ids match the order samtools faidx assigned them, which
// is also BAM header order when the index was derived from the same
// reference used to align).
func Parse(r io.Reader) (*refcontig.Table, error) {
	var entries []refcontig.NameSize

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, errors.E(errors.Invalid, "refidx: malformed .fai line", lineNo, line)
		}
		length, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, errors.E(errors.Invalid, "refidx: malformed .fai length field", lineNo, line)
		}
		entries = append(entries, refcontig.NameSize{Name: fields[0], Size: length})
	}
	// scanner.Err() is a bare I/O failure with no useful Kind of its own,
	// so it's wrapped with pkg/errors rather than promoted to an
	// errors.E(Kind, ...) the way the malformed-line cases above are.
	if err := scanner.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "refidx: reading .fai stream")
	}
	if len(entries) == 0 {
		return nil, errors.E(errors.Invalid, "refidx: empty .fai index")
	}

	return refcontig.NewTable(entries), nil
}
