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

package descriptor

import (
	"context"
	"iter"
	"log/slog"
	"slices"

	"golang.org/x/sync/singleflight"

	"github.com/bufbuild/razorcompile/cache"
	"github.com/bufbuild/razorcompile/checksum"
)

// Collection is an ordered set of tag helpers, such as everything a project
// contributes.
type Collection struct {
	helpers []*TagHelper
}

// NewCollection returns a collection of the given tag helpers, dropping
// duplicates by checksum. The first occurrence wins.
func NewCollection(helpers ...*TagHelper) *Collection {
	seen := make(map[checksum.Checksum]struct{}, len(helpers))
	out := make([]*TagHelper, 0, len(helpers))
	for _, h := range helpers {
		sum := h.Checksum()
		if _, ok := seen[sum]; ok {
			continue
		}
		seen[sum] = struct{}{}
		out = append(out, h)
	}
	return &Collection{helpers: out}
}

// Len returns the number of tag helpers in this collection.
func (c *Collection) Len() int {
	return len(c.helpers)
}

// At returns the nth tag helper.
func (c *Collection) At(n int) *TagHelper {
	return c.helpers[n]
}

// All returns an iterator over the tag helpers in this collection.
func (c *Collection) All() iter.Seq[*TagHelper] {
	return slices.Values(c.helpers)
}

// checksums returns a checksum tree over this collection.
func (c *Collection) checksums() *checksum.WithChildren {
	children := make([]checksum.Summer, len(c.helpers))
	for i, h := range c.helpers {
		children[i] = h
	}
	return checksum.NewWithChildren(children...)
}

// TagHelperCache is a bounded cache of tag helpers keyed by checksum.
//
// Deserializing a tag helper that is already in the cache yields the cached
// instance instead of a fresh copy, so that repeated incremental updates do
// not re-allocate the same descriptor graphs.
type TagHelperCache struct {
	helpers     *cache.MemoryCache[checksum.Checksum, *TagHelper]
	collections cache.ChecksumCache[Collection]
	flight      singleflight.Group
}

// NewTagHelperCache returns a cache holding roughly at most limit tag helpers.
func NewTagHelperCache(limit int, log *slog.Logger) *TagHelperCache {
	return &TagHelperCache{
		helpers: cache.NewMemoryCache[checksum.Checksum, *TagHelper](limit, log),
	}
}

// Get looks up a tag helper by checksum.
func (c *TagHelperCache) Get(sum checksum.Checksum) (*TagHelper, bool) {
	return c.helpers.Get(sum)
}

// Add records a tag helper under its checksum, returning the instance that is
// now canonical for that checksum.
func (c *TagHelperCache) Add(h *TagHelper) *TagHelper {
	return c.helpers.GetOrSet(h.Checksum(), func() *TagHelper { return h })
}

// Len returns the number of cached tag helpers.
func (c *TagHelperCache) Len() int {
	return c.helpers.Len()
}

// GetOrBuild returns the cached tag helper with the given checksum, or calls
// build to produce it.
//
// Concurrent calls for the same checksum share a single call to build, which
// runs without any caller's cancellation. A caller whose ctx expires returns
// early; the build keeps running for the others. If build fails, nothing is
// cached.
func (c *TagHelperCache) GetOrBuild(
	ctx context.Context,
	sum checksum.Checksum,
	build func(context.Context) (*TagHelper, error),
) (*TagHelper, error) {
	if h, ok := c.Get(sum); ok {
		return h, nil
	}

	// The build is shared, so it must outlive any single caller.
	shared := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(sum.String(), func() (any, error) {
		h, err := build(shared)
		if err != nil {
			return nil, err
		}
		return c.Add(h), nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*TagHelper), nil //nolint:errcheck
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}
}

// Checksum returns the checksum of a collection, computing it at most once
// per collection instance.
func (c *TagHelperCache) Checksum(coll *Collection) checksum.Checksum {
	return c.collections.GetOrCompute(coll, func(coll *Collection) checksum.Checksum {
		return coll.checksums().Sum()
	})
}

// Diff returns the indices into b of tag helpers that are not present in a.
func Diff(a, b *Collection) []int {
	have := make(map[checksum.Checksum]struct{}, a.Len())
	for h := range a.All() {
		have[h.Checksum()] = struct{}{}
	}

	var out []int
	for i, h := range b.helpers {
		if _, ok := have[h.Checksum()]; !ok {
			out = append(out, i)
		}
	}
	return out
}
