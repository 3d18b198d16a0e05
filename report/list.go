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

package report

import (
	"cmp"
	"iter"
	"slices"
)

// List is an ordered collection of diagnostics.
//
// A nil *List is empty; reading from it is always safe.
type List struct {
	diagnostics []*Diagnostic
}

// Len returns the number of diagnostics in this list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.diagnostics)
}

// At returns the nth diagnostic.
func (l *List) At(n int) *Diagnostic {
	return l.diagnostics[n]
}

// Add appends diagnostics to the list. Nil diagnostics are ignored.
func (l *List) Add(diagnostics ...*Diagnostic) {
	for _, d := range diagnostics {
		if d != nil {
			l.diagnostics = append(l.diagnostics, d)
		}
	}
}

// AddAll appends the contents of that to l.
func (l *List) AddAll(that *List) {
	if that == nil {
		return
	}
	l.diagnostics = append(l.diagnostics, that.diagnostics...)
}

// All returns an iterator over the diagnostics in this list.
func (l *List) All() iter.Seq[*Diagnostic] {
	return func(yield func(*Diagnostic) bool) {
		if l == nil {
			return
		}
		for _, d := range l.diagnostics {
			if !yield(d) {
				return
			}
		}
	}
}

// HasErrors returns whether any diagnostic in the list is an error.
func (l *List) HasErrors() bool {
	if l == nil {
		return false
	}
	return slices.ContainsFunc(l.diagnostics, func(d *Diagnostic) bool {
		return d.Level == Error
	})
}

// Slice returns a copy of the diagnostics in this list.
func (l *List) Slice() []*Diagnostic {
	if l == nil {
		return nil
	}
	return slices.Clone(l.diagnostics)
}

// SortStable sorts diagnostics by absolute source position.
//
// Diagnostics without a span sort first. Ties keep their relative order.
func SortStable(diagnostics []*Diagnostic) {
	slices.SortStableFunc(diagnostics, func(a, b *Diagnostic) int {
		switch {
		case a.Span == nil && b.Span == nil:
			return 0
		case a.Span == nil:
			return -1
		case b.Span == nil:
			return 1
		}
		return cmp.Compare(a.Span.Offset, b.Span.Offset)
	})
}
