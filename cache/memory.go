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

// Package cache provides the process-level caches used to avoid rebuilding
// or re-allocating large descriptor graphs.
//
// None of these caches are global: they are meant to be owned by a session
// and passed to whoever needs them.
package cache

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

// DefaultSizeLimit is the size limit of a [MemoryCache] created with a
// non-positive limit.
const DefaultSizeLimit = 50

// MemoryCache is a bounded cache with least-recently-used eviction.
//
// When an insertion finds the cache full, the least recently accessed half of
// the cache is evicted in a single pass. Values that are still valid may be
// evicted at any time; callers must be prepared to recompute on a miss.
//
// MemoryCache may be used from multiple goroutines concurrently.
type MemoryCache[K comparable, V any] struct {
	limit int
	log   *slog.Logger

	entries sync.Map // [K, *entry[V]]
	count   atomic.Int64

	// Logical clock used for access times. A counter is strictly monotonic,
	// which a wall clock read in a tight loop is not.
	clock atomic.Uint64

	compacting sync.Mutex
}

type entry[V any] struct {
	value      V
	lastAccess atomic.Uint64
}

// NewMemoryCache returns a new cache holding roughly at most limit entries.
//
// If log is nil, compactions are not logged.
func NewMemoryCache[K comparable, V any](limit int, log *slog.Logger) *MemoryCache[K, V] {
	if limit <= 0 {
		limit = DefaultSizeLimit
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &MemoryCache[K, V]{limit: limit, log: log}
}

// Limit returns the size limit for this cache.
func (c *MemoryCache[K, V]) Limit() int {
	return c.limit
}

// Len returns the number of entries currently in the cache.
func (c *MemoryCache[K, V]) Len() int {
	return int(c.count.Load())
}

// Get looks up a value, refreshing its access time on a hit.
func (c *MemoryCache[K, V]) Get(key K) (V, bool) {
	if e, ok := c.entries.Load(key); ok {
		e := e.(*entry[V]) //nolint:errcheck // All values in this map are entries.
		e.lastAccess.Store(c.clock.Add(1))
		return e.value, true
	}

	var zero V
	return zero, false
}

// Set inserts or replaces a value.
//
// If the cache is full, the least recently used half is evicted first.
func (c *MemoryCache[K, V]) Set(key K, value V) {
	if c.Len() >= c.limit {
		c.compact()
	}

	e := &entry[V]{value: value}
	e.lastAccess.Store(c.clock.Add(1))
	if _, loaded := c.entries.Swap(key, e); !loaded {
		c.count.Add(1)
	}
}

// GetOrSet returns the value for key if present, otherwise stores and returns
// the value produced by fn.
//
// fn may be called even if another goroutine stores a value concurrently;
// the first value to be stored wins.
func (c *MemoryCache[K, V]) GetOrSet(key K, fn func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	if c.Len() >= c.limit {
		c.compact()
	}

	e := &entry[V]{value: fn()}
	e.lastAccess.Store(c.clock.Add(1))
	actual, loaded := c.entries.LoadOrStore(key, e)
	if !loaded {
		c.count.Add(1)
	}
	return actual.(*entry[V]).value //nolint:errcheck
}

// Delete removes a key from the cache.
func (c *MemoryCache[K, V]) Delete(key K) {
	if _, loaded := c.entries.LoadAndDelete(key); loaded {
		c.count.Add(-1)
	}
}

// Clear removes every entry from the cache.
func (c *MemoryCache[K, V]) Clear() {
	c.compacting.Lock()
	defer c.compacting.Unlock()

	c.entries.Range(func(k, _ any) bool {
		c.Delete(k.(K)) //nolint:errcheck
		return true
	})
}

// compact evicts the limit/2 least recently accessed entries.
func (c *MemoryCache[K, V]) compact() {
	c.compacting.Lock()
	defer c.compacting.Unlock()

	// Someone else may have compacted while we waited for the lock.
	if c.Len() < c.limit {
		return
	}

	type candidate struct {
		key  K
		tick uint64
	}
	var all []candidate
	c.entries.Range(func(k, e any) bool {
		all = append(all, candidate{
			key:  k.(K),                           //nolint:errcheck
			tick: e.(*entry[V]).lastAccess.Load(), //nolint:errcheck
		})
		return true
	})
	slices.SortFunc(all, func(a, b candidate) int {
		return cmp.Compare(a.tick, b.tick)
	})

	evict := min(c.limit/2, len(all))
	for _, victim := range all[:evict] {
		c.Delete(victim.key)
	}

	c.log.Debug("compacted memory cache",
		slog.Int("limit", c.limit),
		slog.Int("evicted", evict),
		slog.Int("remaining", c.Len()),
	)
}
