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

// Package strprofile implements C8 (spec.md §4.8): the single-sample
// profiling driver and its three output writers.
package strprofile

import (
	"encoding/json"

	"github.com/grailbio/base/errors"
)

// Document is the single-sample profile JSON document (spec.md §4.8): a
// flat object with top-level ReadLength/Depth plus one entry per canonical
// motif, keyed by the motif string itself (not nested under a "Motifs"
// wrapper) — the shape the original ProfileWorkflow.cpp emits via
// nlohmann::json, preserved here so strmerge's loader round-trips it.
type Document struct {
	ReadLength int64
	Depth      float64
	Motifs     map[string]*MotifProfile
}

// MotifProfile is one canonical motif's profile entry.
type MotifProfile struct {
	RepeatUnit       string         `json:"RepeatUnit"`
	AnchoredIrrCount int            `json:"AnchoredIrrCount"`
	IrrPairCount     int            `json:"IrrPairCount"`
	Regions          map[string]int `json:"Regions,omitempty"`
}

// MarshalJSON flattens ReadLength/Depth and the per-motif entries into one
// JSON object. encoding/json sorts map keys, so motif order in the emitted
// document is alphabetical and therefore reproducible across runs.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, 2+len(d.Motifs))
	out["ReadLength"] = d.ReadLength
	out["Depth"] = d.Depth
	for motif, mp := range d.Motifs {
		out[motif] = mp
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements the inverse of MarshalJSON, and enforces spec.md
// §4.9's "Require ReadLength and Depth present" precondition (a FormatError
// if either key is missing from the document).
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.E(err, "strprofile: malformed profile document")
	}

	readLength, ok := raw["ReadLength"]
	if !ok {
		return errors.E(errors.Invalid, "strprofile: profile document missing ReadLength")
	}
	if err := json.Unmarshal(readLength, &d.ReadLength); err != nil {
		return errors.E(err, "strprofile: malformed ReadLength")
	}
	delete(raw, "ReadLength")

	depth, ok := raw["Depth"]
	if !ok {
		return errors.E(errors.Invalid, "strprofile: profile document missing Depth")
	}
	if err := json.Unmarshal(depth, &d.Depth); err != nil {
		return errors.E(err, "strprofile: malformed Depth")
	}
	delete(raw, "Depth")

	d.Motifs = make(map[string]*MotifProfile, len(raw))
	for motif, v := range raw {
		var mp MotifProfile
		if err := json.Unmarshal(v, &mp); err != nil {
			return errors.E(err, "strprofile: malformed motif entry", motif)
		}
		d.Motifs[motif] = &mp
	}
	return nil
}
