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

package intermediate

import (
	"math"

	"github.com/tidwall/btree"
)

// SpanIndex finds nodes by source position.
//
// The index is a snapshot: edits to the tree after it is built are not
// reflected in it.
type SpanIndex struct {
	tree *btree.BTreeG[spanEntry]
}

type spanEntry struct {
	start, end int
	// Pre-order position, which breaks ties between nodes with identical
	// spans in favor of the deeper one.
	order int
	node  Node
}

// Sorts by start, then outermost first, then in pre-order.
func spanLess(a, b spanEntry) bool {
	if a.start != b.start {
		return a.start < b.start
	}
	if a.end != b.end {
		return a.end > b.end
	}
	return a.order < b.order
}

// NewSpanIndex indexes every node with a source span in the tree rooted at
// root.
func NewSpanIndex(root Node) *SpanIndex {
	x := &SpanIndex{tree: btree.NewBTreeGOptions(spanLess, btree.Options{NoLocks: true})}

	var order int
	Inspect(root, func(n Node, _ *Walker) bool {
		if span, ok := n.Source(); ok {
			x.tree.Set(spanEntry{
				start: span.Offset,
				end:   span.End(),
				order: order,
				node:  n,
			})
			order++
		}
		return true
	})
	return x
}

// Len returns the number of indexed nodes.
func (x *SpanIndex) Len() int {
	return x.tree.Len()
}

// NodeAt returns the innermost node whose span contains offset, or nil if
// there is none.
//
// An empty span contains only its start offset.
func (x *SpanIndex) NodeAt(offset int) Node {
	var found Node
	pivot := spanEntry{start: offset, end: math.MinInt, order: math.MaxInt}
	x.tree.Descend(pivot, func(e spanEntry) bool {
		if offset < e.end || (e.start == e.end && e.start == offset) {
			found = e.node
			return false
		}
		return true
	})
	return found
}
