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

// Package source describes locations inside templated-markup source documents.
package source

import (
	"cmp"
	"fmt"
)

// Span is a location within a source document.
//
// Offsets and lengths are measured in UTF-16 code units, which is what
// editors speak; Line and Column are zero-indexed.
type Span struct {
	// The document this span refers to. May be empty for synthesized code.
	Path string

	// The absolute offset of the first character in the span.
	Offset int
	// The zero-indexed line and column of Offset.
	Line, Column int
	// The number of characters covered.
	Length int

	// The number of line breaks inside the span, and the column the span
	// ends at. These are optional and only used for display.
	LineCount, EndColumn int
}

// New returns a new span without end-line information.
func New(path string, offset, line, column, length int) Span {
	return Span{
		Path:   path,
		Offset: offset,
		Line:   line,
		Column: column,
		Length: length,
	}
}

// End returns the offset one past the last character in this span.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Contains returns whether offset falls inside of this span.
//
// An empty span contains exactly its start.
func (s Span) Contains(offset int) bool {
	if s.Length == 0 {
		return offset == s.Offset
	}
	return s.Offset <= offset && offset < s.End()
}

// Encloses returns whether that lies entirely within s.
func (s Span) Encloses(that Span) bool {
	return s.Path == that.Path && s.Offset <= that.Offset && that.End() <= s.End()
}

// String implements [fmt.Stringer].
//
// The output looks like (12:1,4 [7] Pages/Index.razor).
func (s Span) String() string {
	if s.Path == "" {
		return fmt.Sprintf("(%d:%d,%d [%d])", s.Offset, s.Line, s.Column, s.Length)
	}
	return fmt.Sprintf("(%d:%d,%d [%d] %s)", s.Offset, s.Line, s.Column, s.Length, s.Path)
}

// Compare orders spans by path, then by offset, then by length.
func Compare(a, b Span) int {
	if c := cmp.Compare(a.Path, b.Path); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Offset, b.Offset); c != 0 {
		return c
	}
	return cmp.Compare(a.Length, b.Length)
}
