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

// Package strmerge implements C9 (spec.md §4.9): manifest-driven
// multisample merge and its JSON writer.
package strmerge

import (
	"bufio"
	"context"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// Status is a manifest entry's case/control label (spec.md §6: "Status is
// the literal case or control; anything else is fatal").
type Status string

const (
	Case    Status = "case"
	Control Status = "control"
)

// ManifestEntry is one parsed manifest line.
type ManifestEntry struct {
	Sample string
	Status Status
	Path   string
}

// LoadManifest reads the whitespace-separated "sample\tstatus\tpath"
// manifest (spec.md §6), preserving line order.
func LoadManifest(ctx context.Context, path string) (entries []ManifestEntry, err error) {
	src, cerr := file.Open(ctx, path)
	if cerr != nil {
		return nil, errors.E(cerr, "strmerge: opening manifest", path)
	}
	defer file.CloseAndReport(ctx, src, &err)

	scanner := bufio.NewScanner(src.Reader(ctx))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, errors.E(errors.Invalid, "strmerge: malformed manifest line", lineNo, line)
		}
		status := Status(fields[1])
		if status != Case && status != Control {
			return nil, errors.E(errors.Invalid, "strmerge: invalid sample status", lineNo, fields[1])
		}
		entries = append(entries, ManifestEntry{Sample: fields[0], Status: status, Path: fields[2]})
	}
	if serr := scanner.Err(); serr != nil {
		return nil, errors.E(serr, "strmerge: reading manifest", path)
	}
	if len(entries) == 0 {
		return nil, errors.E(errors.Invalid, "strmerge: empty manifest", path)
	}
	return entries, nil
}
