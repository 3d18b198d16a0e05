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
	"iter"
	"slices"
)

// Walker performs a pre-order traversal of an intermediate tree, calling a
// [Visitor] on every node.
//
// Walker does not recurse: pending nodes live on a slice, so trees of any
// depth can be walked. While a visitor method runs, the walker reports the
// ancestors of the node being visited.
//
// A visitor may mutate the children of the node it is visiting; those
// mutations are observed by the walk. Mutating other parts of the tree during
// a walk is not supported. To replace nodes, collect [Reference]s with
// [FindDescendantReferences] and edit afterwards.
type Walker struct {
	Visitor Visitor

	stack     []walkFrame
	ancestors []Node
}

type walkFrame struct {
	node  Node
	depth int
}

// NewWalker returns a new walker that calls v.
func NewWalker(v Visitor) *Walker {
	return &Walker{Visitor: v}
}

// Walk walks the tree rooted at root.
func Walk(root Node, v Visitor) {
	NewWalker(v).Walk(root)
}

// Inspect walks the tree rooted at root, calling f for each node. If f returns
// false, the node's children are skipped.
//
// f receives the walker, which can be used to query the node's ancestors.
func Inspect(root Node, f func(Node, *Walker) bool) {
	w := new(Walker)
	w.Visitor = funcVisitor(func(n Node) bool { return f(n, w) })
	w.Walk(root)
}

// Walk walks the tree rooted at root. A walker may be reused, but not
// concurrently.
func (w *Walker) Walk(root Node) {
	if root == nil {
		return
	}

	w.stack = append(w.stack[:0], walkFrame{root, 0})
	w.ancestors = w.ancestors[:0]
	defer func() {
		clear(w.stack)
		clear(w.ancestors)
		w.stack = w.stack[:0]
		w.ancestors = w.ancestors[:0]
	}()

	for len(w.stack) > 0 {
		top := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		w.ancestors = w.ancestors[:top.depth]

		if !top.node.Accept(w.Visitor) {
			continue
		}

		children := top.node.Children()
		if children.Len() == 0 {
			continue
		}

		w.ancestors = append(w.ancestors, top.node)
		for _, child := range children.Backward() {
			w.stack = append(w.stack, walkFrame{child, top.depth + 1})
		}
	}
}

// Depth returns the depth of the node currently being visited. The root has
// depth zero.
func (w *Walker) Depth() int {
	return len(w.ancestors)
}

// Parent returns the parent of the node currently being visited, or nil if it
// is the root.
func (w *Walker) Parent() Node {
	if len(w.ancestors) == 0 {
		return nil
	}
	return w.ancestors[len(w.ancestors)-1]
}

// Ancestors returns an iterator over the ancestors of the node currently
// being visited, nearest first.
func (w *Walker) Ancestors() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, n := range slices.Backward(w.ancestors) {
			if !yield(n) {
				return
			}
		}
	}
}
