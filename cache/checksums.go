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
	"runtime"
	"sync"
	"sync/atomic"
	"weak"

	"github.com/bufbuild/razorcompile/checksum"
)

// ChecksumCache remembers the checksum previously computed for an object,
// without keeping that object alive.
//
// Entries disappear some time after their key is garbage collected. The zero
// value is empty and ready to use; it may be used from multiple goroutines.
type ChecksumCache[T any] struct {
	entries sync.Map // [weak.Pointer[T], checksum.Checksum]
	count   atomic.Int64
}

// TryGet returns the checksum recorded for obj, if any.
func (c *ChecksumCache[T]) TryGet(obj *T) (checksum.Checksum, bool) {
	if obj == nil {
		return checksum.Null, false
	}
	if v, ok := c.entries.Load(weak.Make(obj)); ok {
		return v.(checksum.Checksum), true //nolint:errcheck
	}
	return checksum.Null, false
}

// Set records the checksum of obj, replacing any existing entry.
func (c *ChecksumCache[T]) Set(obj *T, sum checksum.Checksum) {
	if obj == nil {
		return
	}
	key := weak.Make(obj)
	if _, loaded := c.entries.Swap(key, sum); !loaded {
		c.track(obj, key)
	}
}

// GetOrCompute returns the recorded checksum of obj, computing and recording
// it with compute on a miss.
//
// A nil obj always yields [checksum.Null].
func (c *ChecksumCache[T]) GetOrCompute(obj *T, compute func(*T) checksum.Checksum) checksum.Checksum {
	if obj == nil {
		return checksum.Null
	}
	if sum, ok := c.TryGet(obj); ok {
		return sum
	}

	key := weak.Make(obj)
	actual, loaded := c.entries.LoadOrStore(key, compute(obj))
	if !loaded {
		c.track(obj, key)
	}
	return actual.(checksum.Checksum) //nolint:errcheck
}

// Len returns the number of live entries, approximately: entries whose keys
// were collected are removed asynchronously.
func (c *ChecksumCache[T]) Len() int {
	return int(c.count.Load())
}

// track arranges for key to be removed once obj is collected.
func (c *ChecksumCache[T]) track(obj *T, key weak.Pointer[T]) {
	c.count.Add(1)
	runtime.AddCleanup(obj, func(key weak.Pointer[T]) {
		if _, loaded := c.entries.LoadAndDelete(key); loaded {
			c.count.Add(-1)
		}
	}, key)
}
