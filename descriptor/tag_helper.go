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
	"github.com/bufbuild/razorcompile/checksum"
	"github.com/bufbuild/razorcompile/report"
)

// Well-known values of [TagHelper].Kind.
const (
	KindTagHelper          = "ITagHelper"
	KindComponent          = "Components.Component"
	KindChildContent       = "Components.ChildContent"
	KindEventHandler       = "Components.EventHandler"
	KindBind               = "Components.Bind"
	KindRef                = "Components.Ref"
	KindKey                = "Components.Key"
	KindSplat              = "Components.Splat"
	KindFormName           = "Components.FormName"
	KindRenderMode         = "Components.RenderMode"
	KindDirectiveAttribute = "Components.DirectiveAttribute"
)

// TagHelper describes a markup extension that binds to elements matching its
// rules.
type TagHelper struct {
	Kind          string `msgpack:"kind"`
	Name          string `msgpack:"name"`
	AssemblyName  string `msgpack:"assembly"`
	DisplayName   string `msgpack:"display,omitempty"`
	Documentation string `msgpack:"docs,omitempty"`
	TagOutputHint string `msgpack:"hint,omitempty"`
	CaseSensitive bool   `msgpack:"case,omitempty"`

	TagMatchingRules []*TagMatchingRule `msgpack:"rules,omitempty"`
	BoundAttributes  []*BoundAttribute  `msgpack:"attrs,omitempty"`
	AllowedChildTags []*AllowedChildTag `msgpack:"children,omitempty"`

	Metadata    Metadata             `msgpack:"meta,omitempty"`
	Diagnostics []*report.Diagnostic `msgpack:"diags,omitempty"`

	memo memo
}

// Sum implements [checksum.Summer].
func (t *TagHelper) Sum() checksum.Checksum {
	return t.Checksum()
}

// Checksum returns the checksum of this descriptor and everything it
// contains.
func (t *TagHelper) Checksum() checksum.Checksum {
	return t.memo.get(func(b *checksum.Builder) {
		b.AppendString(t.Kind)
		b.AppendString(t.Name)
		b.AppendString(t.AssemblyName)
		b.AppendString(t.DisplayName)
		b.AppendString(t.Documentation)
		b.AppendString(t.TagOutputHint)
		b.AppendBool(t.CaseSensitive)

		appendAll(b, t.TagMatchingRules)
		appendAll(b, t.BoundAttributes)
		appendAll(b, t.AllowedChildTags)

		t.Metadata.appendTo(b)
		appendDiagnostics(b, t.Diagnostics)
	})
}

// IsComponent returns whether this tag helper describes a component.
func (t *TagHelper) IsComponent() bool {
	return t.Kind == KindComponent
}

// HasErrors returns whether this descriptor or any of its parts carry an
// error diagnostic.
func (t *TagHelper) HasErrors() bool {
	for _, d := range t.AllDiagnostics() {
		if d.Level == report.Error {
			return true
		}
	}
	return false
}

// AllDiagnostics returns the diagnostics of this descriptor and of all of its
// parts.
func (t *TagHelper) AllDiagnostics() []*report.Diagnostic {
	var out []*report.Diagnostic
	for _, r := range t.TagMatchingRules {
		out = append(out, r.Diagnostics...)
		for _, a := range r.Attributes {
			out = append(out, a.Diagnostics...)
		}
	}
	for _, a := range t.BoundAttributes {
		out = append(out, a.Diagnostics...)
		for _, p := range a.Parameters {
			out = append(out, p.Diagnostics...)
		}
	}
	for _, c := range t.AllowedChildTags {
		out = append(out, c.Diagnostics...)
	}
	return append(out, t.Diagnostics...)
}

// BoundAttribute looks up a bound attribute by name.
func (t *TagHelper) BoundAttribute(name string) *BoundAttribute {
	for _, a := range t.BoundAttributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// BoundAttribute describes an attribute that a [TagHelper] binds to a
// property.
type BoundAttribute struct {
	Kind                 string `msgpack:"kind"`
	Name                 string `msgpack:"name"`
	PropertyName         string `msgpack:"prop,omitempty"`
	TypeName             string `msgpack:"type,omitempty"`
	IndexerNamePrefix    string `msgpack:"idxprefix,omitempty"`
	IndexerTypeName      string `msgpack:"idxtype,omitempty"`
	DisplayName          string `msgpack:"display,omitempty"`
	Documentation        string `msgpack:"docs,omitempty"`
	IsEnum               bool   `msgpack:"enum,omitempty"`
	IsEditorRequired     bool   `msgpack:"required,omitempty"`
	IsDirectiveAttribute bool   `msgpack:"directive,omitempty"`
	CaseSensitive        bool   `msgpack:"case,omitempty"`

	Parameters  []*BoundAttributeParameter `msgpack:"params,omitempty"`
	Metadata    Metadata                   `msgpack:"meta,omitempty"`
	Diagnostics []*report.Diagnostic       `msgpack:"diags,omitempty"`

	memo memo
}

// Sum implements [checksum.Summer].
func (a *BoundAttribute) Sum() checksum.Checksum {
	return a.memo.get(func(b *checksum.Builder) {
		b.AppendString(a.Kind)
		b.AppendString(a.Name)
		b.AppendString(a.PropertyName)
		b.AppendString(a.TypeName)
		b.AppendString(a.IndexerNamePrefix)
		b.AppendString(a.IndexerTypeName)
		b.AppendString(a.DisplayName)
		b.AppendString(a.Documentation)
		b.AppendBool(a.IsEnum)
		b.AppendBool(a.IsEditorRequired)
		b.AppendBool(a.IsDirectiveAttribute)
		b.AppendBool(a.CaseSensitive)

		appendAll(b, a.Parameters)
		a.Metadata.appendTo(b)
		appendDiagnostics(b, a.Diagnostics)
	})
}

// HasIndexer returns whether this attribute also binds name-prefixed
// dictionary entries.
func (a *BoundAttribute) HasIndexer() bool {
	return a.IndexerNamePrefix != ""
}

// BoundAttributeParameter describes a parameter of a directive attribute,
// such as the "event" in @bind:event.
type BoundAttributeParameter struct {
	Name          string `msgpack:"name"`
	PropertyName  string `msgpack:"prop,omitempty"`
	TypeName      string `msgpack:"type,omitempty"`
	DisplayName   string `msgpack:"display,omitempty"`
	Documentation string `msgpack:"docs,omitempty"`
	IsEnum        bool   `msgpack:"enum,omitempty"`
	CaseSensitive bool   `msgpack:"case,omitempty"`

	Metadata    Metadata             `msgpack:"meta,omitempty"`
	Diagnostics []*report.Diagnostic `msgpack:"diags,omitempty"`

	memo memo
}

// Sum implements [checksum.Summer].
func (p *BoundAttributeParameter) Sum() checksum.Checksum {
	return p.memo.get(func(b *checksum.Builder) {
		b.AppendString(p.Name)
		b.AppendString(p.PropertyName)
		b.AppendString(p.TypeName)
		b.AppendString(p.DisplayName)
		b.AppendString(p.Documentation)
		b.AppendBool(p.IsEnum)
		b.AppendBool(p.CaseSensitive)

		p.Metadata.appendTo(b)
		appendDiagnostics(b, p.Diagnostics)
	})
}
