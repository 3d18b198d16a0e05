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
	"github.com/bufbuild/razorcompile/report"
	"github.com/bufbuild/razorcompile/source"
)

// Node is a node in an intermediate tree.
//
// All implementations are pointers to structs that embed [Base]. Nodes are
// compared by identity.
type Node interface {
	// Kind returns the kind of this node. Nodes defined outside of this
	// package return [KindExtension].
	Kind() Kind

	// Children returns this node's children. Never nil; leaf nodes return an
	// empty, read-only collection.
	Children() *Collection

	// Source returns the span this node was lowered from, if it has one.
	Source() (source.Span, bool)
	SetSource(source.Span)
	ClearSource()

	Annotation(key any) (any, bool)
	SetAnnotation(key, value any)
	Annotations() map[any]any

	// Diagnostics returns the diagnostics attached to this node, allocating
	// the list if necessary. Use HasDiagnostics to check without allocating.
	Diagnostics() *report.List
	HasDiagnostics() bool

	// Accept calls the one method of v that corresponds to this node's type,
	// and returns its result.
	Accept(v Visitor) bool

	// FormatNode writes this node's content and properties to f.
	FormatNode(f *Formatter)

	base() *Base
}

// Base holds the state common to all nodes. Every [Node] implementation
// embeds it.
//
// The zero value is an empty node with no source span.
type Base struct {
	span        *source.Span
	annotations map[any]any
	diagnostics *report.List
	children    *Collection
}

func (b *Base) base() *Base { return b }

// Children implements [Node].
func (b *Base) Children() *Collection {
	if b.children == nil {
		b.children = new(Collection)
	}
	return b.children
}

// Source implements [Node].
func (b *Base) Source() (source.Span, bool) {
	if b.span == nil {
		return source.Span{}, false
	}
	return *b.span, true
}

// SetSource implements [Node].
func (b *Base) SetSource(span source.Span) {
	b.span = &span
}

// ClearSource implements [Node].
func (b *Base) ClearSource() {
	b.span = nil
}

// Annotation implements [Node].
func (b *Base) Annotation(key any) (any, bool) {
	v, ok := b.annotations[key]
	return v, ok
}

// SetAnnotation implements [Node].
func (b *Base) SetAnnotation(key, value any) {
	if b.annotations == nil {
		b.annotations = make(map[any]any)
	}
	b.annotations[key] = value
}

// Annotations implements [Node]. The returned map may be nil.
func (b *Base) Annotations() map[any]any {
	return b.annotations
}

// Diagnostics implements [Node].
func (b *Base) Diagnostics() *report.List {
	if b.diagnostics == nil {
		b.diagnostics = new(report.List)
	}
	return b.diagnostics
}

// HasDiagnostics implements [Node].
func (b *Base) HasDiagnostics() bool {
	return b.diagnostics.Len() > 0
}

// leaf is embedded by nodes that cannot have children.
type leaf struct{ Base }

// Children implements [Node].
func (*leaf) Children() *Collection {
	return emptyCollection
}

// WithSource sets the source span of n and returns it.
func WithSource[N Node](n N, span source.Span) N {
	n.SetSource(span)
	return n
}

// WithChildren appends children to n and returns it.
func WithChildren[N Node](n N, children ...Node) N {
	n.Children().Add(children...)
	return n
}

// Annotation keys set by lowering passes.
const (
	// Marks the namespace, class and method that generated code is emitted
	// into. The value is always true.
	PrimaryNamespace annotationKey = "PrimaryNamespace"
	PrimaryClass     annotationKey = "PrimaryClass"
	PrimaryMethod    annotationKey = "PrimaryMethod"
)

type annotationKey string

func (k annotationKey) String() string { return string(k) }
