// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"hash/maphash"
	"strings"
	"sync"
	"unsafe"
	"weak"
)

// minPurgeThreshold is the smallest table size at which a [StringCache]
// bothers looking for dead entries.
const minPurgeThreshold = 64

// Process-wide; hashes never leave the process.
var seed = maphash.MakeSeed()

// StringCache deduplicates equal strings without keeping them alive.
//
// This is intended for data that is repeatedly deserialized, such as
// descriptors arriving in incremental updates: interning collapses every copy
// of a string onto one allocation, and once nothing else refers to that
// allocation it is collected as usual.
//
// The zero value is empty and ready to use. StringCache may be used from
// multiple goroutines concurrently.
type StringCache struct {
	mu sync.RWMutex
	// Keyed by hash rather than by string, since a string key would keep its
	// contents alive forever.
	table    map[uint64][]weakString
	entries  int
	purgeAt  int
	minPurge int
}

// NewStringCache returns a cache that does not look for dead entries until it
// holds at least threshold of them.
func NewStringCache(threshold int) *StringCache {
	return &StringCache{minPurge: threshold}
}

type weakString struct {
	data weak.Pointer[byte]
	len  int
}

func (w weakString) get() (string, bool) {
	p := w.data.Value()
	if p == nil {
		return "", false
	}
	return unsafe.String(p, w.len), true
}

// Intern returns a string equal to s, reusing a previously interned copy if
// one is still alive.
func (c *StringCache) Intern(s string) string {
	if s == "" {
		return ""
	}

	h := c.hash(s)
	c.mu.RLock()
	found, ok := c.lookup(h, s)
	c.mu.RUnlock()
	if ok {
		return found
	}

	// Outline the fallback for when we haven't interned, to promote inlining
	// of the fast path.
	return c.internSlow(h, s)
}

// Len returns the number of entries in the table, including dead entries that
// have not been purged yet.
func (c *StringCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries
}

// Purge drops every dead entry and returns the number of live entries.
func (c *StringCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purge()
	return c.entries
}

func (c *StringCache) internSlow(h uint64, s string) string {
	// Never hold on to a buffer that s is an interior pointer into.
	s = strings.Clone(s)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Check if someone raced us to intern this string.
	if found, ok := c.lookup(h, s); ok {
		return found
	}

	if c.table == nil {
		c.table = make(map[uint64][]weakString)
		if c.minPurge <= 0 {
			c.minPurge = minPurgeThreshold
		}
		c.purgeAt = c.minPurge
	}
	if c.entries >= c.purgeAt {
		c.purge()
		c.purgeAt = max(c.minPurge, 2*c.entries)
	}

	c.table[h] = append(c.table[h], weakString{
		data: weak.Make(unsafe.StringData(s)),
		len:  len(s),
	})
	c.entries++
	return s
}

// lookup must be called with mu held.
func (c *StringCache) lookup(h uint64, s string) (string, bool) {
	for _, w := range c.table[h] {
		if found, ok := w.get(); ok && found == s {
			return found, true
		}
	}
	return "", false
}

// purge must be called with mu held for writing.
func (c *StringCache) purge() {
	for h, bucket := range c.table {
		live := bucket[:0]
		for _, w := range bucket {
			if w.data.Value() != nil {
				live = append(live, w)
			}
		}
		clear(bucket[len(live):])

		c.entries -= len(bucket) - len(live)
		if len(live) == 0 {
			delete(c.table, h)
		} else {
			c.table[h] = live
		}
	}
}

func (c *StringCache) hash(s string) uint64 {
	return maphash.String(seed, s)
}
