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

	"github.com/bufbuild/razorcompile/descriptor"
	"github.com/bufbuild/razorcompile/report"
)

// FindFirst returns the first node in pre-order, starting at and including
// root, for which match returns true. Returns nil if there is none.
func FindFirst(root Node, match func(Node) bool) Node {
	var found Node
	Inspect(root, func(n Node, _ *Walker) bool {
		if found != nil {
			return false
		}
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant of root that is a T, in pre-order. root
// itself is not included.
func FindAll[T Node](root Node) []T {
	var out []T
	Inspect(root, func(n Node, w *Walker) bool {
		if t, ok := n.(T); ok && w.Depth() > 0 {
			out = append(out, t)
		}
		return true
	})
	return out
}

// FindPrimaryNamespace returns the namespace annotated with
// [PrimaryNamespace], or nil.
func FindPrimaryNamespace(root Node) *Namespace {
	return findAnnotated[*Namespace](root, PrimaryNamespace)
}

// FindPrimaryClass returns the class annotated with [PrimaryClass], or nil.
func FindPrimaryClass(root Node) *Class {
	return findAnnotated[*Class](root, PrimaryClass)
}

// FindPrimaryMethod returns the method annotated with [PrimaryMethod], or nil.
func FindPrimaryMethod(root Node) *Method {
	return findAnnotated[*Method](root, PrimaryMethod)
}

func findAnnotated[T Node](root Node, key annotationKey) T {
	n := FindFirst(root, func(n Node) bool {
		if _, ok := n.(T); !ok {
			return false
		}
		v, _ := n.Annotation(key)
		primary, _ := v.(bool)
		return primary
	})
	t, _ := n.(T)
	return t
}

// FindDirectiveReferences returns references to every [Directive] under root
// that uses the given directive descriptor, in pre-order.
func FindDirectiveReferences(root Node, directive *descriptor.Directive) []Reference {
	var out []Reference
	Inspect(root, func(n Node, w *Walker) bool {
		if d, ok := n.(*Directive); ok && d.Directive == directive {
			if parent := w.Parent(); parent != nil {
				out = append(out, NewReference(parent, d))
			}
		}
		return true
	})
	return out
}

// FindDescendantReferences returns references to every descendant of root
// that is a T.
//
// References are returned in post-order: a node's descendants come before the
// node itself. This means that the references can be edited in order, and
// replacing one node never invalidates a reference that comes after it.
func FindDescendantReferences[T Node](root Node) []Reference {
	var out []Reference
	for n, parent := range postOrder(root) {
		if _, ok := n.(T); ok && parent != nil {
			out = append(out, NewReference(parent, n))
		}
	}
	return out
}

// PostOrder returns an iterator over every node in the tree rooted at root,
// with each node's children before the node itself.
func PostOrder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for n := range postOrder(root) {
			if !yield(n) {
				return
			}
		}
	}
}

// postOrder yields every node along with its parent.
func postOrder(root Node) iter.Seq2[Node, Node] {
	type frame struct {
		node, parent Node
		expanded     bool
	}

	return func(yield func(Node, Node) bool) {
		if root == nil {
			return
		}

		stack := []frame{{node: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := top.node.Children()
			if top.expanded || children.Len() == 0 {
				stack = stack[:len(stack)-1]
				if !yield(top.node, top.parent) {
					return
				}
				continue
			}

			top.expanded = true
			node := top.node
			for _, child := range children.Backward() {
				stack = append(stack, frame{node: child, parent: node})
			}
		}
	}
}

// AllDiagnostics returns every diagnostic in the tree rooted at root, sorted
// by position. Diagnostics without a position come first.
func AllDiagnostics(root Node) []*report.Diagnostic {
	var out []*report.Diagnostic
	Inspect(root, func(n Node, _ *Walker) bool {
		if n.HasDiagnostics() {
			out = append(out, n.Diagnostics().Slice()...)
		}
		return true
	})
	report.SortStable(out)
	return out
}

// ContainsDiagnostics returns whether any node in the tree rooted at root has
// a diagnostic.
func ContainsDiagnostics(root Node) bool {
	return FindFirst(root, Node.HasDiagnostics) != nil
}
