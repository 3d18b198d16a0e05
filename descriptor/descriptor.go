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

// Package descriptor defines the metadata objects that markup extensions are
// described by: tag helpers, their bound attributes and matching rules, and
// directives.
//
// Descriptors are treated as immutable once built. Each one can compute a
// stable [checksum.Checksum] over all of its fields, which is used to key
// caches and to skip redundant work when descriptors arrive again in an
// incremental update.
package descriptor

import (
	"maps"
	"slices"
	"sync/atomic"

	"github.com/bufbuild/razorcompile/checksum"
	"github.com/bufbuild/razorcompile/report"
)

// Metadata is free-form key/value metadata attached to a descriptor.
type Metadata map[string]string

// appendTo appends metadata to b in key order.
func (m Metadata) appendTo(b *checksum.Builder) {
	b.AppendInt(len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		b.AppendString(k)
		b.AppendString(m[k])
	}
}

func appendDiagnostics(b *checksum.Builder, diagnostics []*report.Diagnostic) {
	b.AppendInt(len(diagnostics))
	for _, d := range diagnostics {
		d.AppendTo(b)
	}
}

func appendAll[T checksum.Summer](b *checksum.Builder, items []T) {
	b.AppendInt(len(items))
	for _, item := range items {
		b.AppendChecksum(item.Sum())
	}
}

// memo lazily records a computed checksum.
//
// Racing goroutines may both compute the checksum, but because descriptors
// are immutable they compute the same value.
type memo struct {
	sum atomic.Pointer[checksum.Checksum]
}

func (m *memo) get(compute func(*checksum.Builder)) checksum.Checksum {
	if sum := m.sum.Load(); sum != nil {
		return *sum
	}

	b := checksum.NewBuilder()
	compute(b)
	sum := b.FreeAndGetChecksum()
	m.sum.CompareAndSwap(nil, &sum)
	return sum
}
