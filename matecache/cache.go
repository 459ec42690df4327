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

// Package matecache implements C5 (spec.md §4.5): a bounded-memory cache
// that meets the two mates of a read pair in arbitrary order and stages
// anchor/IRR regions for the region aggregator. Its sharding idiom mirrors
// encoding/bampair/concurrentmap.go's seahash-sharded mate map, kept here
// even though the sweep is single-threaded (spec.md §5) for the same O(1)
// amortized eviction with a cheap hash that motivated it there.
package matecache

import (
	"fmt"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/errors"
)

const numShards = 256

// entryKind tags what's cached for a read name. There is no inheritance
// hierarchy here (spec.md §9 design note): a cacheEntry is a small tagged
// union of the three possible shapes.
type entryKind int

const (
	kindAnchor entryKind = iota
	kindIRR
	kindOther
)

type cacheEntry struct {
	kind     entryKind
	contigID int
	pos      int64
	motif    string // only meaningful when kind == kindIRR
}

type shard struct {
	entries map[string]cacheEntry
}

// Cache is the unpaired-read cache: a keyed store of variant entries with
// atomic "take if present, else insert" semantics (spec.md §9).
type Cache struct {
	shards [numShards]shard
}

// NewCache builds an empty cache.
func NewCache() *Cache {
	c := &Cache{}
	for i := range c.shards {
		c.shards[i].entries = make(map[string]cacheEntry)
	}
	return c
}

func (c *Cache) shardFor(name string) *shard {
	h := seahash.Sum64([]byte(name))
	return &c.shards[h%numShards]
}

// take removes and returns the cached entry for name, if any.
func (c *Cache) take(name string) (cacheEntry, bool) {
	s := c.shardFor(name)
	e, ok := s.entries[name]
	if ok {
		delete(s.entries, name)
	}
	return e, ok
}

// put inserts an entry for name. A read name that is already cached is
// always evicted before this is called (spec.md §4.5 state machine:
// absent -> cached(type) -> absent; no entry is cached twice).
func (c *Cache) put(name string, e cacheEntry) {
	s := c.shardFor(name)
	if _, exists := s.entries[name]; exists {
		panic(errors.E(errors.Precondition, "duplicate cache insertion", name))
	}
	s.entries[name] = e
}

// Len returns the number of currently cached (unpaired) reads, the memory
// footprint bound spec.md §5 describes.
func (c *Cache) Len() int {
	n := 0
	for i := range c.shards {
		n += len(c.shards[i].entries)
	}
	return n
}

func (c *Cache) String() string {
	return fmt.Sprintf("matecache.Cache(%d unpaired reads)", c.Len())
}
