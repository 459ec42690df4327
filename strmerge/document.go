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

// Document is the multisample merge output (spec.md §4.9): two top-level
// objects, Counts (per-motif) and Parameters (per-sample).
type Document struct {
	Counts     map[string]*MotifCounts `json:"Counts"`
	Parameters Parameters              `json:"Parameters"`
}

// MotifCounts is one motif's merged counts across the cohort.
type MotifCounts struct {
	IrrPairCounts         map[string]int            `json:"IrrPairCounts,omitempty"`
	RegionsWithIrrAnchors map[string]map[string]int `json:"RegionsWithIrrAnchors,omitempty"`
}

// Parameters holds the per-sample read-length/depth block.
type Parameters struct {
	ReadLengths map[string]int64   `json:"ReadLengths"`
	Depths      map[string]float64 `json:"Depths"`
}
