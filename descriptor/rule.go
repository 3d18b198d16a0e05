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
	"fmt"

	"github.com/bufbuild/razorcompile/checksum"
	"github.com/bufbuild/razorcompile/report"
)

// TagStructure is the shape a matched element must have.
type TagStructure int8

const (
	TagStructureUnspecified TagStructure = iota
	TagStructureNormalOrSelfClosing
	TagStructureWithoutEndTag
)

// String implements [fmt.Stringer].
func (s TagStructure) String() string {
	switch s {
	case TagStructureUnspecified:
		return "Unspecified"
	case TagStructureNormalOrSelfClosing:
		return "NormalOrSelfClosing"
	case TagStructureWithoutEndTag:
		return "WithoutEndTag"
	default:
		return fmt.Sprintf("TagStructure(%d)", int(s))
	}
}

// NameComparison is how a [RequiredAttribute] matches attribute names.
type NameComparison int8

const (
	NameFullMatch NameComparison = iota
	NamePrefixMatch
)

// ValueComparison is how a [RequiredAttribute] matches attribute values.
type ValueComparison int8

const (
	ValueNone ValueComparison = iota
	ValueFullMatch
	ValuePrefixMatch
	ValueSuffixMatch
)

// TagMatchingRule describes which elements a [TagHelper] applies to.
type TagMatchingRule struct {
	TagName       string       `msgpack:"tag"`
	ParentTag     string       `msgpack:"parent,omitempty"`
	TagStructure  TagStructure `msgpack:"structure,omitempty"`
	CaseSensitive bool         `msgpack:"case,omitempty"`

	Attributes  []*RequiredAttribute `msgpack:"attrs,omitempty"`
	Diagnostics []*report.Diagnostic `msgpack:"diags,omitempty"`

	memo memo
}

// Sum implements [checksum.Summer].
func (r *TagMatchingRule) Sum() checksum.Checksum {
	return r.memo.get(func(b *checksum.Builder) {
		b.AppendString(r.TagName)
		b.AppendString(r.ParentTag)
		b.AppendInt32(int32(r.TagStructure))
		b.AppendBool(r.CaseSensitive)

		appendAll(b, r.Attributes)
		appendDiagnostics(b, r.Diagnostics)
	})
}

// RequiredAttribute is an attribute an element must carry for a
// [TagMatchingRule] to match.
type RequiredAttribute struct {
	Name                 string          `msgpack:"name"`
	NameComparison       NameComparison  `msgpack:"namecmp,omitempty"`
	Value                string          `msgpack:"value,omitempty"`
	ValueComparison      ValueComparison `msgpack:"valuecmp,omitempty"`
	DisplayName          string          `msgpack:"display,omitempty"`
	CaseSensitive        bool            `msgpack:"case,omitempty"`
	IsDirectiveAttribute bool            `msgpack:"directive,omitempty"`

	Metadata    Metadata             `msgpack:"meta,omitempty"`
	Diagnostics []*report.Diagnostic `msgpack:"diags,omitempty"`

	memo memo
}

// Sum implements [checksum.Summer].
func (a *RequiredAttribute) Sum() checksum.Checksum {
	return a.memo.get(func(b *checksum.Builder) {
		b.AppendString(a.Name)
		b.AppendInt32(int32(a.NameComparison))
		b.AppendString(a.Value)
		b.AppendInt32(int32(a.ValueComparison))
		b.AppendString(a.DisplayName)
		b.AppendBool(a.CaseSensitive)
		b.AppendBool(a.IsDirectiveAttribute)

		a.Metadata.appendTo(b)
		appendDiagnostics(b, a.Diagnostics)
	})
}

// AllowedChildTag restricts which elements may appear inside a [TagHelper].
type AllowedChildTag struct {
	Name        string               `msgpack:"name"`
	DisplayName string               `msgpack:"display,omitempty"`
	Diagnostics []*report.Diagnostic `msgpack:"diags,omitempty"`

	memo memo
}

// Sum implements [checksum.Summer].
func (c *AllowedChildTag) Sum() checksum.Checksum {
	return c.memo.get(func(b *checksum.Builder) {
		b.AppendString(c.Name)
		b.AppendString(c.DisplayName)
		appendDiagnostics(b, c.Diagnostics)
	})
}
