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

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// writeDocument emits the multisample profile JSON document (spec.md §4.9),
// UTF-8 with a 4-space indent, matching MergeWorkflow.cpp's dump(4).
func writeDocument(ctx context.Context, path string, doc Document) (err error) {
	dst, cerr := file.Create(ctx, path)
	if cerr != nil {
		return errors.E(cerr, "strmerge: creating multisample document", path)
	}
	defer file.CloseAndReport(ctx, dst, &err)

	encoded, jerr := json.MarshalIndent(doc, "", "    ")
	if jerr != nil {
		return errors.E(jerr, "strmerge: encoding multisample document")
	}
	if _, werr := dst.Writer(ctx).Write(encoded); werr != nil {
		return errors.E(werr, "strmerge: writing multisample document", path)
	}
	return nil
}
